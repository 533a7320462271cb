package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: false, Right: false, Top: true, Bottom: true})
	return t
}

func renderUser(w io.Writer, u *models.User) {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.AppendBulk([][]string{
		{"ID", u.ID},
		{"Username", u.UserName},
		{"Email", u.Email},
		{"Learning style", u.LearningStyle},
		{"Knowledge level", u.KnowledgeLevel},
		{"Member since", u.CreatedAt.Format(time.DateOnly)},
	})
	t.Render()
}

func renderPlanList(w io.Writer, plans []models.Plan) {
	t := newTable(w, "ID", "Subject", "Hours", "Days", "Level", "Created")
	for _, p := range plans {
		t.Append([]string{
			p.ID,
			p.Subject,
			strconv.Itoa(p.TotalHours),
			strconv.Itoa(p.TotalDays),
			p.KnowledgeLevel,
			p.CreatedAt.Format(time.DateOnly),
		})
	}
	t.Render()
}

func renderPlan(w io.Writer, p *models.Plan) {
	fmt.Fprintf(w, "Plan %s: %s (%s, %s)\n", p.ID, p.Subject, p.Domain, p.Difficulty)
	fmt.Fprintf(w, "%d hours over %d days at %d h/day", p.TotalHours, p.TotalDays, p.DailyHours)
	if p.UnscheduledHours > 0 {
		fmt.Fprintf(w, ", %d hours did not fit", p.UnscheduledHours)
	}
	fmt.Fprintln(w)
	if p.ExamDate != "" {
		fmt.Fprintf(w, "Exam date: %s\n", p.ExamDate)
	}

	t := newTable(w, "Day", "Date", "Hours", "Topics", "Goals")
	for _, d := range p.Schedule {
		topics := make([]string, 0, len(d.Topics))
		for _, s := range d.Topics {
			topics = append(topics, fmt.Sprintf("%s (%dh)", s.Topic, s.Hours))
		}
		t.Append([]string{
			strconv.Itoa(d.Day),
			d.Date,
			strconv.Itoa(d.Hours),
			strings.Join(topics, ", "),
			strings.Join(d.Goals, "; "),
		})
	}
	t.Render()

	if len(p.Resources) > 0 {
		fmt.Fprintln(w, "Recommended resources:")
		renderResources(w, p.Resources)
	}
	if p.Motivation != nil {
		renderQuote(w, p.Motivation)
	}
}

func renderResources(w io.Writer, res []models.Resource) {
	t := newTable(w, "Title", "Type", "Level", "URL")
	for _, r := range res {
		t.Append([]string{r.Title, r.ResourceType, r.Difficulty, r.URL})
	}
	t.Render()
}

func renderProgress(w io.Writer, p *models.Progress) {
	fmt.Fprintf(w, "Completed %d hours (%.1f%%). Current topic: %s\n",
		p.CompletedHours, p.ProgressPercentage, p.CurrentTopic)
}

func renderQuote(w io.Writer, m *models.Motivation) {
	if m.Quote.Text != "" {
		fmt.Fprintf(w, "%q - %s\n", m.Quote.Text, m.Quote.Author)
	}
	if m.Tip != "" {
		fmt.Fprintf(w, "Tip: %s\n", m.Tip)
	}
	if m.Encouragement != "" {
		fmt.Fprintln(w, m.Encouragement)
	}
}

func renderMotivation(w io.Writer, r *models.MotivationResult) {
	fmt.Fprintf(w, "Mood: %s\n", r.MoodAnalysis.PrimaryMood)
	renderQuote(w, &r.Motivation)
}

func renderSummary(w io.Writer, s *models.Summary) {
	if s.Answer != "" {
		fmt.Fprintf(w, "Q: %s\nA: %s\n", s.Question, s.Answer)
	} else {
		fmt.Fprintln(w, s.Summary)
	}
	if s.Truncated {
		fmt.Fprintln(w, "(the document was truncated before processing)")
	}
	if s.DownloadURL != "" {
		fmt.Fprintf(w, "Archived copy: %s\n", s.DownloadURL)
	}
}

func renderAnalysis(w io.Writer, a *models.Analysis) {
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.AppendBulk([][]string{
		{"Tokens", strconv.Itoa(a.TokenCount)},
		{"Without stopwords", strings.Join(a.NoStopwords, " ")},
		{"Stems", strings.Join(a.Stems, " ")},
		{"Lemmas", strings.Join(a.Lemmas, " ")},
		{"Mood", a.Sentiment.Mood},
		{"Polarity", strconv.FormatFloat(a.Sentiment.Polarity, 'f', 2, 64)},
	})
	t.Render()
}
