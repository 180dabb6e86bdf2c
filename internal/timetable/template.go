package timetable

import (
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
)

// TemplateScope где искать шаблон
type TemplateScope int

const (
	ScopeGroup TemplateScope = iota
	ScopeSpeciality
)

const specialityPrefix = "-"

// TemplateRef разобранная ссылка на шаблон
type TemplateRef struct {
	Scope TemplateScope
	ID    string
}

// ParseTemplateRef разбирает ссылку: префикс "-" означает шаблон специальности
func ParseTemplateRef(ref string) TemplateRef {
	if id, ok := strings.CutPrefix(ref, specialityPrefix); ok {
		return TemplateRef{Scope: ScopeSpeciality, ID: id}
	}
	return TemplateRef{Scope: ScopeGroup, ID: ref}
}

// String возвращает ссылку в формате документа
func (r TemplateRef) String() string {
	if r.Scope == ScopeSpeciality {
		return specialityPrefix + r.ID
	}
	return r.ID
}

// ResolveTemplate ищет шаблон в группе или специальности.
// Отсутствие шаблона не ошибка: вызывающий решает, что с этим делать.
func ResolveTemplate(ref TemplateRef, groupTemplates, specialityTemplates []model.LessonTemplate) (*model.LessonTemplate, bool) {
	templates := groupTemplates
	if ref.Scope == ScopeSpeciality {
		templates = specialityTemplates
	}
	for i := range templates {
		if templates[i].ID == ref.ID {
			return &templates[i], true
		}
	}
	return nil, false
}
