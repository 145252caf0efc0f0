package ceremonyservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Ceremony подтверждённая церемония, занимающая ресурс
// Read-only проекция из подсистемы бронирования церемоний
type Ceremony struct {
	ID         int64  `json:"id"`
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"`      // "2026-05-20"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "10:45"
}

// ceremoniesResponse ответ CeremonyService со списком церемоний
type ceremoniesResponse struct {
	Ceremonies []Ceremony `json:"ceremonies"`
}
