// Package docs holds the inv documentation topics, one markdown file per
// topic, embedded in the binary.
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others, it is not a topic itself.
const index = "readme"

// GetTopic returns the content of a documentation topic, or of all of them
// for "*".
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, see 'inv topic -list': %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of the topics, separated by a blank line.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of the topics.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, f := range files {
		if name := strings.TrimSuffix(path.Base(f), ".md"); name != index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// Title returns the first heading of a topic, or its name if it has none.
func Title(topic string) string {
	content, err := GetTopic(topic)
	if err != nil {
		return topic
	}
	s := bufio.NewScanner(strings.NewReader(content))
	for s.Scan() {
		if line := s.Text(); strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return topic
}
