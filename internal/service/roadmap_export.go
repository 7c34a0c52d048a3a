package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type ExportResult struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Key    string `json:"key"`
}

type exportSubtopic struct {
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
	Lesson    string `yaml:"lesson,omitempty"`
}

type exportTopic struct {
	Title     string           `yaml:"title"`
	Minutes   int              `yaml:"estimated_minutes"`
	Completed bool             `yaml:"completed"`
	Lesson    string           `yaml:"lesson,omitempty"`
	Subtopics []exportSubtopic `yaml:"subtopics,omitempty"`
}

type exportModule struct {
	Title       string        `yaml:"title"`
	Description string        `yaml:"description,omitempty"`
	Completed   bool          `yaml:"completed"`
	Topics      []exportTopic `yaml:"topics"`
}

type exportDocument struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Goal        string         `yaml:"goal"`
	Progress    int            `yaml:"progress"`
	Modules     []exportModule `yaml:"modules"`
}

// Export renders the roadmap with its lesson titles and uploads the
// document through the storage service.
func (s *RoadmapService) Export(ctx context.Context, userID, id uint, format string) (*ExportResult, error) {
	if format == "" {
		format = util.ExportMarkdown
	}
	if format != util.ExportMarkdown && format != util.ExportYAML {
		return nil, util.ErrUnsupportedFormat
	}

	roadmap, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	contents, err := s.ContentRepo.ListByRoadmap(roadmap.ID, userID)
	if err != nil {
		return nil, err
	}
	doc := buildExportDocument(roadmap, lessonTitles(contents))

	var (
		data      []byte
		ext, mime string
	)
	switch format {
	case util.ExportYAML:
		data, err = yaml.Marshal(doc)
		if err != nil {
			return nil, err
		}
		ext, mime = "yaml", util.MimeYAML
	default:
		data = []byte(renderMarkdown(doc))
		ext, mime = "md", util.MimeMarkdown
	}

	key := fmt.Sprintf("exports/%d/roadmap-%d-%d.%s", userID, roadmap.ID, s.Now().Unix(), ext)
	url, err := s.Storage.PutBytes(ctx, key, data, mime)
	if err != nil {
		return nil, fmt.Errorf("uploading export: %w", err)
	}
	return &ExportResult{URL: url, Format: format, Key: key}, nil
}

func lessonTitles(contents []model.Content) map[string]string {
	titles := make(map[string]string, len(contents))
	for _, c := range contents {
		titles[ContentCacheKey(c.RoadmapID, c.Ref())] = c.Title
	}
	return titles
}

func buildExportDocument(r *model.Roadmap, lessons map[string]string) exportDocument {
	doc := exportDocument{
		Title:       r.Title,
		Description: r.Description,
		Goal:        r.Goal,
		Progress:    r.Progress,
		Modules:     make([]exportModule, len(r.Modules)),
	}
	for m, module := range r.Modules {
		em := exportModule{
			Title:       module.Title,
			Description: module.Description,
			Completed:   module.Completed,
			Topics:      make([]exportTopic, len(module.Topics)),
		}
		for t, topic := range module.Topics {
			et := exportTopic{
				Title:     topic.Title,
				Minutes:   topic.EstimatedTimeMinutes,
				Completed: topic.Completed,
				Lesson:    lessons[ContentCacheKey(r.ID, model.UnitRef{ModuleIndex: m, TopicIndex: t})],
			}
			for sIdx, sub := range topic.Subtopics {
				ref := model.UnitRef{ModuleIndex: m, TopicIndex: t, SubtopicIndex: model.IntPtr(sIdx)}
				et.Subtopics = append(et.Subtopics, exportSubtopic{
					Title:     sub.Title,
					Completed: sub.Completed,
					Lesson:    lessons[ContentCacheKey(r.ID, ref)],
				})
			}
			em.Topics[t] = et
		}
		doc.Modules[m] = em
	}
	return doc
}

func renderMarkdown(doc exportDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", doc.Title, doc.Description)
	fmt.Fprintf(&b, "**Goal:** %s\n\n**Progress:** %d%%\n", doc.Goal, doc.Progress)

	for i, m := range doc.Modules {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, m.Title)
		if m.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", m.Description)
		}
		for _, t := range m.Topics {
			fmt.Fprintf(&b, "- [%s] %s (%d min)", checkbox(t.Completed), t.Title, t.Minutes)
			if t.Lesson != "" {
				fmt.Fprintf(&b, ", lesson: %s", t.Lesson)
			}
			b.WriteString("\n")
			for _, s := range t.Subtopics {
				fmt.Fprintf(&b, "  - [%s] %s", checkbox(s.Completed), s.Title)
				if s.Lesson != "" {
					fmt.Fprintf(&b, ", lesson: %s", s.Lesson)
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func checkbox(done bool) string {
	if done {
		return "x"
	}
	return " "
}
