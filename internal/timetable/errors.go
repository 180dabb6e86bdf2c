package timetable

import "errors"

var (
	// ErrInvalidDate день, месяц и год не образуют существующую дату
	ErrInvalidDate = errors.New("wrong date")
	// ErrUncalibrated ни одна точка синхронизации не предшествует дате
	ErrUncalibrated = errors.New("not calibrated!")
)
