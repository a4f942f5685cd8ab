package model

// Diagnostic describes one finding from validation or calculation.
// CRITICAL findings are not repairable; WARNING findings are.
type Diagnostic struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)
