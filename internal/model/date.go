package model

import "fmt"

// DateTuple дата в формате документа: [год, месяц (1-12), день]
type DateTuple [3]int

// NewDateTuple собирает дату из компонентов
func NewDateTuple(year, month, day int) DateTuple {
	return DateTuple{year, month, day}
}

func (d DateTuple) Year() int  { return d[0] }
func (d DateTuple) Month() int { return d[1] }
func (d DateTuple) Day() int   { return d[2] }

// Compare сравнивает даты по календарю: -1, 0 или 1
func (d DateTuple) Compare(other DateTuple) int {
	for i := 0; i < 3; i++ {
		if d[i] < other[i] {
			return -1
		}
		if d[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Contains проверяет что date попадает в [d, end] включительно
func (d DateTuple) Contains(end, date DateTuple) bool {
	return d.Compare(date) <= 0 && end.Compare(date) >= 0
}

func (d DateTuple) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d[0], d[1], d[2])
}
