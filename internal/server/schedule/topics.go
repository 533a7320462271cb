package schedule

import (
	"fmt"
	"strings"
)

type template struct {
	level  string
	format string
}

var templates = map[string][]template{
	"technology": {
		{"beginner", "{subject} Fundamentals and Core Concepts"},
		{"beginner", "Setting Up {subject} Environment and Tools"},
		{"intermediate", "Advanced {subject} Principles and Patterns"},
		{"intermediate", "Building {subject} Projects and Applications"},
		{"advanced", "{subject} Architecture and System Design"},
		{"advanced", "Professional {subject} Development and Deployment"},
		{"advanced", "{subject} Performance Optimization and Scaling"},
		{"assessment", "{subject} Testing, Debugging, and Quality Assurance"},
	},
	"fitness": {
		{"beginner", "{subject} Fundamentals and Safety Guidelines"},
		{"beginner", "Basic {subject} Techniques and Form"},
		{"intermediate", "{subject} Programming and Periodization"},
		{"intermediate", "Intermediate {subject} Exercises and Routines"},
		{"advanced", "Advanced {subject} Strategies and Periodization"},
		{"advanced", "Competition Preparation and Peak Performance"},
		{"application", "{subject} Nutrition and Recovery Protocols"},
		{"assessment", "Progress Tracking and Performance Analysis"},
	},
	"creative": {
		{"beginner", "{subject} Principles and Fundamental Concepts"},
		{"beginner", "Basic {subject} Tools and Techniques"},
		{"intermediate", "{subject} Composition and Design Theory"},
		{"intermediate", "Intermediate {subject} Projects and Skills"},
		{"advanced", "Advanced {subject} Styles and Movements"},
		{"advanced", "Professional {subject} Portfolio Development"},
		{"application", "{subject} Industry Practices and Workflow"},
		{"assessment", "{subject} Critique and Self-Assessment"},
	},
	"language": {
		{"beginner", "{subject} Basics and Pronunciation"},
		{"beginner", "Essential {subject} Vocabulary and Phrases"},
		{"intermediate", "{subject} Grammar and Sentence Structure"},
		{"intermediate", "Conversational {subject} Practice"},
		{"advanced", "Advanced {subject} Grammar and Syntax"},
		{"advanced", "Professional and Academic {subject}"},
		{"application", "{subject} Cultural Context and Usage"},
		{"assessment", "{subject} Proficiency Testing and Evaluation"},
	},
	"business": {
		{"beginner", "{subject} Fundamentals and Key Concepts"},
		{"beginner", "Basic {subject} Tools and Methods"},
		{"intermediate", "{subject} Strategy and Analysis"},
		{"intermediate", "{subject} Case Studies and Applications"},
		{"advanced", "Advanced {subject} Theory and Models"},
		{"advanced", "{subject} Leadership and Implementation"},
		{"application", "Real-world {subject} Problem Solving"},
		{"assessment", "{subject} Metrics and Performance Evaluation"},
	},
	DomainGeneric: {
		{"beginner", "Introduction to {subject}"},
		{"beginner", "{subject} Basics and Getting Started"},
		{"intermediate", "Intermediate {subject} Concepts"},
		{"intermediate", "Practical {subject} Applications"},
		{"advanced", "Advanced {subject} Mastery"},
		{"advanced", "Professional {subject} Practice"},
		{"application", "Real-world {subject} Implementation"},
		{"assessment", "{subject} Assessment and Evaluation"},
	},
}

var verbs = map[string][]string{
	"beginner":     {"Learn", "Understand", "Explore", "Discover", "Introduction to"},
	"intermediate": {"Develop", "Apply", "Practice", "Implement", "Build"},
	"advanced":     {"Master", "Optimize", "Specialize", "Expert-level", "Advanced"},
	"application":  {"Apply", "Integrate", "Utilize", "Deploy", "Execute"},
	"assessment":   {"Evaluate", "Test", "Assess", "Review", "Analyze"},
}

var padding = []string{
	"Fundamentals of {subject}",
	"Practical {subject} Skills",
	"Advanced {subject} Techniques",
	"{subject} Best Practices",
	"{subject} Case Studies",
	"Professional {subject} Development",
	"{subject} Problem Solving",
	"{subject} Innovation and Trends",
}

// GenerateTopics proposes up to n distinct topics for subject from the
// templates of its domain.
func GenerateTopics(subject string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	tpls, ok := templates[ClassifyDomain(subject)]
	if !ok {
		tpls = templates[DomainGeneric]
	}

	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	add := func(topic string) {
		if _, dup := seen[topic]; dup || len(out) >= n {
			return
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}

	for cycle := 0; len(out) < n && cycle < 2*len(tpls); cycle++ {
		t := tpls[cycle%len(tpls)]
		topic := strings.ReplaceAll(t.format, "{subject}", subject)
		if cycle >= len(tpls) {
			v := verbs[t.level]
			topic = v[cycle%len(v)] + " " + topic
		}
		add(topic)
	}

	for _, p := range padding {
		add(strings.ReplaceAll(p, "{subject}", subject))
	}
	for i := 2; len(out) < n; i++ {
		add(fmt.Sprintf("%s Practice Session %d", subject, i))
	}

	return out
}
