package service

import (
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerCreateKeepsSinglePending(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	first, err := f.timer.Create(user.ID, CreateTimerInput{RoadmapID: roadmap.ID, TopicIndex: 0, SubtopicIndex: model.IntPtr(1), Minutes: 30})
	require.NoError(t, err)
	assert.Equal(t, model.TimerManual, first.Kind)
	assert.Equal(t, roadmap.Modules[0].Topics[0].Subtopics[1].ID, first.UnitID)
	assert.Equal(t, fixedNow.Add(30*time.Minute), first.NextContentDelivery)

	second, err := f.timer.Create(user.ID, CreateTimerInput{RoadmapID: roadmap.ID, TopicIndex: 1, Minutes: 5, Kind: model.TimerAI})
	require.NoError(t, err)

	active, err := f.timer.Active(user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
	assert.Equal(t, model.TimerAI, active[0].Kind)

	_, err = f.timer.Create(user.ID, CreateTimerInput{RoadmapID: roadmap.ID, TopicIndex: 1, SubtopicIndex: model.IntPtr(0), Minutes: 5})
	assert.ErrorIs(t, err, util.ErrSubtopicNotFound)
	_, err = f.timer.Create(user.ID, CreateTimerInput{RoadmapID: roadmap.ID + 1, Minutes: 5})
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
}

func TestTimerSuggest(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	in := SuggestTimerInput{RoadmapID: roadmap.ID, TopicIndex: 1}
	f.mock.AddResponse(llm.Text(`{"intervalMinutes": 20, "isReview": true, "reason": "short lesson"}`))

	suggestion, err := f.timer.Suggest(context.Background(), user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 20, suggestion.Minutes)
	assert.True(t, suggestion.IsReview)
	assert.Equal(t, "ai", suggestion.Source)

	suggestion, err = f.timer.Suggest(context.Background(), user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 30, suggestion.Minutes)
	assert.Equal(t, "default", suggestion.Source)
}

func TestTimerCurrent(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	current, err := f.timer.Current(user.ID)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, f.timer.Replace(&model.Timer{UserID: user.ID, RoadmapID: roadmap.ID, NextContentDelivery: fixedNow.Add(90 * time.Second)}))
	current, err = f.timer.Current(user.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "01:30", current.Remaining.Formatted)
	assert.Equal(t, int64(90000), current.Remaining.TotalMillis)
	assert.False(t, current.Remaining.Expired)
}

func TestTimerNext(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	next, err := f.timer.Next(user.ID)
	require.NoError(t, err)
	assert.False(t, next.Ready)
	assert.Equal(t, "No content ready for delivery", next.Message)

	timer := &model.Timer{UserID: user.ID, RoadmapID: roadmap.ID, NextContentDelivery: fixedNow.Add(-time.Minute)}
	require.NoError(t, f.timer.Replace(timer))

	next, err = f.timer.Next(user.ID)
	require.NoError(t, err)
	assert.False(t, next.Ready)
	assert.Equal(t, "Content needs to be generated", next.Message)
	require.NotNil(t, next.Unit)
	assert.Equal(t, "Types", next.Unit.TopicTitle)

	content := f.seedContent(t, user.ID, roadmap, model.UnitRef{})
	next, err = f.timer.Next(user.ID)
	require.NoError(t, err)
	assert.True(t, next.Ready)
	require.NotNil(t, next.Content)
	assert.Equal(t, content.ID, next.Content.ID)
	assert.Nil(t, next.Quiz)

	stored, err := f.timers.FindByIDForUser(timer.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.NotificationSent)
}

func TestTimerNextReviewUsesTimerUnit(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ref := model.UnitRef{ModuleIndex: 0, TopicIndex: 1}
	content := f.seedContent(t, user.ID, roadmap, ref)

	require.NoError(t, f.timer.Replace(&model.Timer{
		UserID:              user.ID,
		RoadmapID:           roadmap.ID,
		NextContentDelivery: fixedNow,
		UnitID:              roadmap.Modules[0].Topics[1].ID,
		TopicIndex:          1,
		IsReview:            true,
	}))

	next, err := f.timer.Next(user.ID)
	require.NoError(t, err)
	assert.True(t, next.Ready)
	assert.True(t, next.IsReview)
	assert.Equal(t, "Loops", next.Unit.TopicTitle)
	assert.Equal(t, content.ID, next.Content.ID)
}

func TestTimerDeliverSnoozeDelete(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	timer := &model.Timer{UserID: user.ID, RoadmapID: roadmap.ID, NextContentDelivery: fixedNow, NotificationSent: true}
	require.NoError(t, f.timer.Replace(timer))

	_, err := f.timer.Snooze(user.ID, timer.ID, 0)
	assert.ErrorIs(t, err, util.ErrInvalidSnooze)
	_, err = f.timer.Snooze(user.ID, timer.ID, maxSnoozeMinutes+1)
	assert.ErrorIs(t, err, util.ErrInvalidSnooze)
	_, err = f.timer.Snooze(user.ID, timer.ID, math.MaxInt)
	assert.ErrorIs(t, err, util.ErrInvalidSnooze)

	snoozed, err := f.timer.Snooze(user.ID, timer.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(15*time.Minute).Unix(), snoozed.NextContentDelivery.Unix())
	assert.False(t, snoozed.NotificationSent)
	assert.Nil(t, snoozed.NotificationSentAt)

	delivered, err := f.timer.MarkDelivered(user.ID, timer.ID)
	require.NoError(t, err)
	assert.True(t, delivered.ContentDelivered)
	require.NotNil(t, delivered.ContentDeliveredAt)

	history, err := f.timer.History(user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	active, err := f.timer.Active(user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, f.timer.Delete(user.ID, timer.ID))
	assert.ErrorIs(t, f.timer.Delete(user.ID, timer.ID), util.ErrTimerNotFound)
	_, err = f.timer.MarkDelivered(user.ID+1, timer.ID)
	assert.ErrorIs(t, err, util.ErrTimerNotFound)
}

func TestDispatchDueNotifications(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ctx := context.Background()

	require.NoError(t, f.timer.Replace(&model.Timer{
		UserID:              user.ID,
		RoadmapID:           roadmap.ID,
		NextContentDelivery: fixedNow.Add(-time.Minute),
		TopicIndex:          0,
		SubtopicIndex:       model.IntPtr(1),
	}))
	other := f.seedRoadmap(t, user.ID)
	require.NoError(t, f.timer.Replace(&model.Timer{UserID: user.ID, RoadmapID: other.ID, NextContentDelivery: fixedNow.Add(time.Hour)}))

	sent, err := f.timer.DispatchDueNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	notes, err := f.notifications.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Learning Reminder", notes[0].Title)
	assert.Equal(t, "Time for your next lesson: strings", notes[0].Message)
	assert.Equal(t, fmt.Sprintf("/roadmaps/%d/learning?module=0&topic=0&subtopic=1", roadmap.ID), notes[0].URL)

	sent, err = f.timer.DispatchDueNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}
