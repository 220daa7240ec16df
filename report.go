package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rezmoss/ritualcli/internal/config"
	"github.com/rezmoss/ritualcli/internal/models"
	"github.com/rezmoss/ritualcli/internal/stats"
)

func report(svc *stats.Service, cfg *config.Config, rng string) error {
	switch rng {
	case "today":
		return reportToday(svc)
	case "week":
		return reportWindow(svc, cfg.WindowDays)
	case "history":
		return reportHistory(svc)
	default:
		return fmt.Errorf("unknown range %q", rng)
	}
}

func reportToday(svc *stats.Service) error {
	today, err := svc.Today(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(time.Now().Format("Date : Jan 2, 2006 , Monday"))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-12s | %-24s | %s\n", "Category", "Entry", "Value")
	fmt.Println(strings.Repeat("-", 50))
	for _, l := range today.Logs {
		subtype := l.Subtype
		if subtype == "" {
			subtype = "-"
		}
		value := l.Value
		if l.ValueKind == models.ValueDurationMinutes {
			value += " min"
		}
		if len(value) > 40 {
			value = value[:37] + "..."
		}
		fmt.Printf("%-12s | %-24s | %s\n", l.Category, subtype, value)
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Score today : %d/100\n", today.Score)
	return nil
}

func reportWindow(svc *stats.Service, days int) error {
	window, err := svc.TrailingWindow(context.Background(), days)
	if err != nil {
		return err
	}

	fmt.Printf("for %d days ending %s\n", days, window[len(window)-1].FullDate)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-15s | %s\n", "Date", "Score")
	fmt.Println(strings.Repeat("-", 50))
	total := 0
	for _, day := range window {
		total += day.Score
		fmt.Printf("%s %-10s | %d\n", day.Label, day.FullDate, day.Score)
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Average score : %d/100\n", total/len(window))
	return nil
}

func reportHistory(svc *stats.Service) error {
	history, err := svc.HistoryMap(context.Background())
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No days on record.")
		return nil
	}

	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	fmt.Printf("%d days on record\n", len(dates))
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-15s | %s\n", "Date", "Score")
	fmt.Println(strings.Repeat("-", 50))
	total := 0
	for _, date := range dates {
		total += history[date]
		fmt.Printf("%-15s | %d\n", date, history[date])
	}
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Average score : %d/100\n", total/len(dates))
	return nil
}
