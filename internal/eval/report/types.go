package report

import (
	"runtime"
	"time"
)

type Summary struct {
	RunID             string          `json:"run_id,omitempty"`
	Timestamp         time.Time       `json:"timestamp"`
	Environment       EnvironmentInfo `json:"environment"`
	Counts            Counts          `json:"counts"`
	Means             Means           `json:"means"`
	RetrievalLatency  LatencyStats    `json:"retrieval_latency_ms"`
	GenerationLatency LatencyStats    `json:"generation_latency_ms"`
}

type Counts struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	EMHits    int `json:"em_hits"`
}

// Means are averages over successful records only.
type Means struct {
	Recall float64 `json:"ctx_recall@5"`
	MRR    float64 `json:"mrr@5"`
	MAP    float64 `json:"map@5"`
	GenEM  float64 `json:"gen_em"`
	GenF1  float64 `json:"gen_f1"`
	E2EEM  float64 `json:"e2e_em"`
	E2EF1  float64 `json:"e2e_f1"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}
