package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/nau_schedule/internal/controller/tgbot"
	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/bytedance/sonic"
)

// Рисует недельное расписание из JSON-документа расписания без базы и справочника
func main() {
	now := time.Now()
	_, isoWeek := now.ISOWeek()

	schedulePath := flag.String("schedule", "schedule.json", "path to schedule document (JSON)")
	week := flag.Int("week", isoWeek, "week of year")
	year := flag.Int("year", now.Year(), "year")
	tz := flag.String("tz", "Europe/Kyiv", "timezone")
	out := flag.String("out", "week.png", "output PNG file")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		fmt.Printf("Неверный часовой пояс: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*schedulePath)
	if err != nil {
		fmt.Printf("Ошибка чтения расписания: %v\n", err)
		os.Exit(1)
	}
	var schedule model.Schedule
	if err := sonic.Unmarshal(data, &schedule); err != nil {
		fmt.Printf("Ошибка разбора расписания: %v\n", err)
		os.Exit(1)
	}

	resolver := timetable.NewResolver(nil, loc)
	resolved, err := resolver.ResolveWeek(context.Background(), timetable.WeekRequest{
		Schedule:   &schedule,
		Week:       *week,
		Year:       *year,
		ShowPlaces: true,
	})
	if err != nil {
		fmt.Printf("Ошибка расчёта недели: %v\n", err)
		os.Exit(1)
	}

	monday := timetable.MondayOfWeek(*week, *year, loc)
	imageData, err := tgbot.RenderWeek(schedule.Group, monday, resolved, now.In(loc))
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	lessons := 0
	for _, d := range resolved.Days {
		lessons += len(d.Lessons)
	}
	fmt.Printf("✅ Изображение сохранено в %s\n", *out)
	fmt.Printf("📅 Неделя %d (%d тиждень), с %s\n", *week, resolved.WeekNumber, monday.Format("02.01.2006"))
	fmt.Printf("📊 Занятий: %d\n", lessons)
}
