package model

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidIndex         = errors.New("Invalid module or topic index")
	ErrInvalidSubtopicIndex = errors.New("Invalid module, topic, or subtopic index")
)

// UnitRef addresses a topic, or a subtopic when SubtopicIndex is set.
type UnitRef struct {
	ModuleIndex   int  `json:"moduleIndex"`
	TopicIndex    int  `json:"topicIndex"`
	SubtopicIndex *int `json:"subtopicIndex,omitempty"`
}

func (r *Roadmap) Module(m int) (*Module, error) {
	if m < 0 || m >= len(r.Modules) {
		return nil, ErrInvalidIndex
	}
	return &r.Modules[m], nil
}

func (r *Roadmap) Topic(m, t int) (*Topic, error) {
	module, err := r.Module(m)
	if err != nil {
		return nil, err
	}
	if t < 0 || t >= len(module.Topics) {
		return nil, ErrInvalidIndex
	}
	return &module.Topics[t], nil
}

func (r *Roadmap) Subtopic(m, t, s int) (*Subtopic, error) {
	topic, err := r.Topic(m, t)
	if err != nil {
		return nil, ErrInvalidSubtopicIndex
	}
	if s < 0 || s >= len(topic.Subtopics) {
		return nil, ErrInvalidSubtopicIndex
	}
	return &topic.Subtopics[s], nil
}

func (r *Roadmap) TotalTopics() int {
	total := 0
	for _, module := range r.Modules {
		total += len(module.Topics)
	}
	return total
}

func (r *Roadmap) CompletedTopics() int {
	completed := 0
	for _, module := range r.Modules {
		for _, topic := range module.Topics {
			if topic.Completed {
				completed++
			}
		}
	}
	return completed
}

// RecalculateProgress sets Progress to the rounded share of completed
// topics. CompletedAt is only kept while every topic is complete.
func (r *Roadmap) RecalculateProgress(now time.Time) {
	total := r.TotalTopics()
	if total == 0 {
		r.Progress = 0
		r.CompletedAt = nil
		return
	}
	completed := r.CompletedTopics()
	r.Progress = int(math.Round(float64(completed) / float64(total) * 100))
	switch {
	case completed < total:
		r.CompletedAt = nil
	case r.CompletedAt == nil:
		r.CompletedAt = TimePtr(now)
	}
}

// SetTopicCompleted marks a topic and cascades the result to its module,
// the roadmap pointers and the progress percentage.
func (r *Roadmap) SetTopicCompleted(m, t int, completed bool, now time.Time) error {
	topic, err := r.Topic(m, t)
	if err != nil {
		return err
	}

	setCompletion(&topic.Completed, &topic.CompletedAt, completed, now)
	r.syncModule(m, now)

	if completed {
		r.AdvancePointer(m, t)
	}
	r.RecalculateProgress(now)
	return nil
}

// SetSubtopicCompleted marks a subtopic. Finishing the last open subtopic
// completes the topic; reopening one reopens the topic and module. The
// pointer moves past the topic whenever all of its subtopics are done.
func (r *Roadmap) SetSubtopicCompleted(m, t, s int, completed bool, now time.Time) error {
	subtopic, err := r.Subtopic(m, t, s)
	if err != nil {
		return err
	}
	topic := &r.Modules[m].Topics[t]

	setCompletion(&subtopic.Completed, &subtopic.CompletedAt, completed, now)

	if completed {
		if allSubtopicsCompleted(topic) {
			if !topic.Completed {
				setCompletion(&topic.Completed, &topic.CompletedAt, true, now)
				r.syncModule(m, now)
			}
			r.AdvancePointer(m, t)
		}
	} else {
		setCompletion(&topic.Completed, &topic.CompletedAt, false, now)
		r.syncModule(m, now)
	}

	r.RecalculateProgress(now)
	return nil
}

// AdvancePointer moves the current pointer past topic t of module m. Past
// the last module the pointer stays where it is.
func (r *Roadmap) AdvancePointer(m, t int) {
	if m < 0 || m >= len(r.Modules) {
		return
	}
	nextModule, nextTopic := m, t+1
	if nextTopic >= len(r.Modules[m].Topics) {
		nextModule, nextTopic = m+1, 0
	}

	if nextModule < len(r.Modules) {
		r.CurrentModule = nextModule
		r.CurrentTopic = nextTopic
	}
}

// NextUnit returns the unit a learner moves on to after the given one,
// wrapping to the start of the roadmap after the last module.
func (r *Roadmap) NextUnit(m, t int, s *int) (UnitRef, error) {
	topic, err := r.Topic(m, t)
	if err != nil {
		return UnitRef{}, err
	}

	if s != nil && *s+1 < len(topic.Subtopics) {
		return UnitRef{ModuleIndex: m, TopicIndex: t, SubtopicIndex: IntPtr(*s + 1)}, nil
	}

	nextModule, nextTopic := m, t+1
	if nextTopic >= len(r.Modules[m].Topics) {
		nextModule, nextTopic = m+1, 0
		if nextModule >= len(r.Modules) {
			nextModule = 0
		}
	}

	ref := UnitRef{ModuleIndex: nextModule, TopicIndex: nextTopic}
	if nextTopic < len(r.Modules[nextModule].Topics) && len(r.Modules[nextModule].Topics[nextTopic].Subtopics) > 0 {
		ref.SubtopicIndex = IntPtr(0)
	}
	return ref, nil
}

// FindUnitByID locates a topic or subtopic by identifier. The returned
// subtopic index is nil for topics.
func (r *Roadmap) FindUnitByID(id string) (UnitRef, bool) {
	for m, module := range r.Modules {
		for t, topic := range module.Topics {
			if topic.ID == id {
				return UnitRef{ModuleIndex: m, TopicIndex: t}, true
			}
			for s, subtopic := range topic.Subtopics {
				if subtopic.ID == id {
					return UnitRef{ModuleIndex: m, TopicIndex: t, SubtopicIndex: IntPtr(s)}, true
				}
			}
		}
	}
	return UnitRef{}, false
}

// UnitID resolves the identifier of the addressed topic or subtopic.
func (r *Roadmap) UnitID(ref UnitRef) (string, error) {
	if ref.SubtopicIndex != nil {
		subtopic, err := r.Subtopic(ref.ModuleIndex, ref.TopicIndex, *ref.SubtopicIndex)
		if err != nil {
			return "", err
		}
		return subtopic.ID, nil
	}
	topic, err := r.Topic(ref.ModuleIndex, ref.TopicIndex)
	if err != nil {
		return "", err
	}
	return topic.ID, nil
}

func (r *Roadmap) syncModule(m int, now time.Time) {
	module := &r.Modules[m]
	all := len(module.Topics) > 0
	for _, topic := range module.Topics {
		if !topic.Completed {
			all = false
			break
		}
	}
	if all == module.Completed {
		return
	}
	setCompletion(&module.Completed, &module.CompletedAt, all, now)
}

func allSubtopicsCompleted(topic *Topic) bool {
	for _, subtopic := range topic.Subtopics {
		if !subtopic.Completed {
			return false
		}
	}
	return true
}

func setCompletion(flag *bool, at **time.Time, completed bool, now time.Time) {
	*flag = completed
	if completed {
		*at = TimePtr(now)
	} else {
		*at = nil
	}
}
