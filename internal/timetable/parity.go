package timetable

import (
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// coarseDays приближённый счёт дней с 1970 года, по которому авторы
// расписаний выставляют точки синхронизации. Менять на точный нельзя.
func coarseDays(year, week int) int {
	return (year-1970)*365 + week*7
}

// syncCompare частичный порядок точек: a "больше" b только если больше и год, и неделя
func syncCompare(a, b model.WeekSync) int {
	if a.Year > b.Year && a.Week > b.Week {
		return 1
	}
	return -1
}

// orderSyncs упорядочивает точки так же, как исторически работающая сортировка
// вставками: сначала выделяется начальный монотонный отрезок (убывающий
// разворачивается), затем остаток вставляется бинарным поиском.
// При частичном компараторе результат зависит от этого порядка действий.
func orderSyncs(syncs []model.WeekSync) {
	n := len(syncs)
	if n < 2 {
		return
	}

	run := 2
	descending := syncCompare(syncs[1], syncs[0]) < 0
	for i := 2; i < n; i++ {
		order := syncCompare(syncs[i], syncs[i-1])
		if (descending && order >= 0) || (!descending && order < 0) {
			break
		}
		run++
	}
	if descending {
		for lo, hi := 0, run-1; lo < hi; lo, hi = lo+1, hi-1 {
			syncs[lo], syncs[hi] = syncs[hi], syncs[lo]
		}
	}

	for start := run; start < n; start++ {
		pivot := syncs[start]
		left, right := 0, start
		for left < right {
			mid := left + (right-left)/2
			if syncCompare(pivot, syncs[mid]) < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(syncs[left+1:start+1], syncs[left:start])
		syncs[left] = pivot
	}
}

// ResolveParity вычисляет номер недели (1 или 2) для даты по точкам синхронизации
func ResolveParity(date time.Time, syncs []model.WeekSync) (int, error) {
	requested := coarseDays(date.Year(), ISOWeekNumber(date))

	candidates := make([]model.WeekSync, 0, len(syncs))
	for _, s := range syncs {
		if coarseDays(s.Year, s.Week) <= requested {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return 0, ErrUncalibrated
	}

	orderSyncs(candidates)
	anchor := candidates[0]

	weeksElapsed := (requested - coarseDays(anchor.Year, anchor.Week)) / 7
	parity := weeksElapsed%2 + anchor.WeekNumber
	if parity >= 3 {
		parity = 1
	}
	return parity, nil
}
