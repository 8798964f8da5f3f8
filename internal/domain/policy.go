package domain

import (
	"time"

	"github.com/m04kA/SMC-ResourceBooking/pkg/types"
)

// ShapeRule правило построения области выделения по паре (anchor, cursor)
type ShapeRule string

const (
	// ShapeVertical ресурс и дата фиксированы по якорю, интерполируются слоты
	ShapeVertical ShapeRule = "vertical"
	// ShapeHorizontal слот фиксирован по якорю, интерполируются даты (закрытые дни пропускаются)
	ShapeHorizontal ShapeRule = "horizontal"
	// ShapeRectangular полное произведение ресурс × дата × слот между якорем и курсором
	ShapeRectangular ShapeRule = "rectangular"
)

// IsValid проверяет, что правило известно
func (s ShapeRule) IsValid() bool {
	switch s {
	case ShapeVertical, ShapeHorizontal, ShapeRectangular:
		return true
	}
	return false
}

// Resource бронируемый объект (переговорная, автомобиль, слот ИИ-инструмента)
type Resource struct {
	ID        string
	Name      string
	Category  string
	Capacity  int
	AdminOnly bool
	Layouts   []string // Варианты расстановки; пусто = расстановка не нужна
}

// RequiresLayout ресурс требует выбора расстановки в форме бронирования
func (r Resource) RequiresLayout() bool {
	return len(r.Layouts) > 0
}

// HasLayout проверяет, что расстановка допустима для ресурса
func (r Resource) HasLayout(layout string) bool {
	for _, l := range r.Layouts {
		if l == layout {
			return true
		}
	}
	return false
}

// Period именованный фиксированный интервал дня ("Morning", "Afternoon")
type Period struct {
	Label string
	Start types.TimeString
	End   types.TimeString
}

// GridConfig статическое описание сетки бронирования одного домена
// Либо Periods задан явно, либо слоты строятся от OpenTime до CloseTime с шагом SlotMinutes
type GridConfig struct {
	Domain               string
	Kind                 string
	Shape                ShapeRule
	CollapseResourceAxis bool
	Location             *time.Location
	OpenTime             types.TimeString
	CloseTime            types.TimeString
	SlotMinutes          int
	Periods              []Period
	ClosedWeekdays       []time.Weekday
	Holidays             []time.Time
	Resources            []Resource
}

// Policy ограничения на выделение
type Policy struct {
	MaxResources int // UnboundedResourceCap = без ограничения
	MaxSpanDays  int // UnboundedSpanDays = без ограничения; 6 = окно в 7 дней
}

// HasResourceCap есть ли ограничение на число ресурсов
func (p Policy) HasResourceCap() bool {
	return p.MaxResources > UnboundedResourceCap
}

// HasSpanCap есть ли ограничение на разброс дат
func (p Policy) HasSpanCap() bool {
	return p.MaxSpanDays > UnboundedSpanDays
}

// DomainConfig полная конфигурация домена, которой параметризуется движок
type DomainConfig struct {
	Grid   GridConfig
	Policy Policy
}

// Session явный контекст пользовательской сессии
type Session struct {
	ID            string
	Domain        string
	AdminUnlocked bool
}
