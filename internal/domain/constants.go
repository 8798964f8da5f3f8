package domain

// Значения по умолчанию для сетки
const (
	DefaultSlotMinutes     = 30
	DefaultOpenTime        = "08:00"
	DefaultCloseTime       = "20:00"
	DefaultCacheTTLSeconds = 30
)

// Ограничения бизнес-валидации
const (
	MinSlotMinutes        = 5
	MaxSlotMinutes        = 720
	MaxNoteLength         = 500
	MaxRequesterLength    = 200
	MaxPurposeLength      = 100
	MaxRecurrenceOccurs   = 366 // ~год ежедневных повторов, для monthly/weekly заведомо с запасом
	UnboundedSpanDays     = -1
	UnboundedResourceCap  = 0
	DefaultSessionIdleTTL = 30 // минуты
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
