package generation

// Stage names a step of a generation run reported to progress listeners.
type Stage string

const (
	StageStarted   Stage = "started"
	StageGenerated Stage = "generated"
	StageParsed    Stage = "parsed"
	StageSlide     Stage = "slide"
	StageCompleted Stage = "completed"
	StageFailed    Stage = "failed"
)

// Progress is one event of a generation run. Index is the zero-based slide
// position for StageSlide events.
type Progress struct {
	Stage   Stage  `json:"stage"`
	Index   int    `json:"index,omitempty"`
	Total   int    `json:"total"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProgressFunc receives progress events synchronously on the generating
// goroutine and must not block.
type ProgressFunc func(Progress)

func (f ProgressFunc) emit(p Progress) {
	if f != nil {
		f(p)
	}
}
