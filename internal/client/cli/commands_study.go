package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/studyplanner/internal/client/models"
)

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}

func (a *App) Plan(ctx context.Context) error {
	var req models.PlanRequest
	var err error

	if req.Subject, err = getSimpleText(a.reader, "Subject", a.out); err != nil {
		return err
	}
	if req.Subject == "" {
		return errors.New("subject is required")
	}
	if req.DailyHours, err = GetInt(a.reader, "Hours per day", 2, a.out); err != nil {
		return err
	}
	if req.TotalDays, err = GetInt(a.reader, "Number of days", 14, a.out); err != nil {
		return err
	}
	if req.KnowledgeLevel, err = getSimpleText(a.reader, "Knowledge level (optional)", a.out); err != nil {
		return err
	}
	if req.StudyPurpose, err = getSimpleText(a.reader, "Study purpose (optional)", a.out); err != nil {
		return err
	}
	if req.ExamDate, err = getSimpleText(a.reader, "Exam date YYYY-MM-DD (optional)", a.out); err != nil {
		return err
	}

	plan, err := a.study.GeneratePlan(ctx, req)
	if err != nil {
		return err
	}
	renderPlan(a.out, plan)
	return nil
}

func (a *App) Plans(ctx context.Context) error {
	plans, err := a.study.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(a.out, "No plans yet. Use 'plan' to create one.")
		return nil
	}
	renderPlanList(a.out, plans)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <plan-id>")
	}
	plan, err := a.study.GetPlan(ctx, args[0])
	if err != nil {
		return err
	}
	renderPlan(a.out, plan)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <plan-id>")
	}
	if err := a.study.DeletePlan(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Plan deleted")
	return nil
}

// Progress shows the progress of a plan, or records completed hours when
// a second argument is given.
func (a *App) Progress(ctx context.Context, args []string) error {
	var (
		p   *models.Progress
		err error
	)
	switch len(args) {
	case 1:
		p, err = a.study.Progress(ctx, args[0])
	case 2:
		hours, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return usage("progress <plan-id> [completed-hours]")
		}
		p, err = a.study.UpdateProgress(ctx, args[0], hours)
	default:
		return usage("progress <plan-id> [completed-hours]")
	}
	if err != nil {
		return err
	}
	renderProgress(a.out, p)
	return nil
}

// Resources takes a free-text topic followed by optional key=value filters.
func (a *App) Resources(ctx context.Context, args []string) error {
	var (
		topic               []string
		level, resourceType string
		limit               int
	)
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			topic = append(topic, arg)
			continue
		}
		switch k {
		case "type":
			resourceType = v
		case "level":
			level = v
		case "limit":
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("limit %q is not a number", v)
			}
			limit = n
		default:
			return fmt.Errorf("unknown filter %q", k)
		}
	}
	if len(topic) == 0 {
		return usage("resources <topic> [type=..] [level=..] [limit=..]")
	}

	res, err := a.study.FindResources(ctx, strings.Join(topic, " "), level, resourceType, limit)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		fmt.Fprintln(a.out, "No resources found")
		return nil
	}
	renderResources(a.out, res)
	return nil
}

func (a *App) Motivate(ctx context.Context, args []string) error {
	var planID string
	if len(args) > 1 {
		return usage("motivate [plan-id]")
	}
	if len(args) == 1 {
		planID = args[0]
	}

	msg, err := GetMultiline(a.reader, "How is your studying going?", a.out)
	if err != nil {
		return err
	}
	if msg == "" {
		return errors.New("message is required")
	}

	res, err := a.study.Motivate(ctx, msg, "", planID)
	if err != nil {
		return err
	}
	renderMotivation(a.out, res)
	return nil
}

func (a *App) Summarize(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("summarize <file> [question]")
	}
	s, err := a.study.SummarizeFile(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	renderSummary(a.out, s)
	return nil
}

func (a *App) Analyze(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Text to analyze", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("text is required")
	}
	res, err := a.study.Analyze(ctx, text)
	if err != nil {
		return err
	}
	renderAnalysis(a.out, res)
	return nil
}
