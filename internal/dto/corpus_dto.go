package dto

type IngestSectionRequest struct {
	Content string `json:"content" validate:"required"`
	Section string `json:"section" validate:"required"`
	Week    string `json:"week,omitempty"`
	Topic   string `json:"topic,omitempty"`
}

type IngestRequest struct {
	Sections []IngestSectionRequest `json:"sections" validate:"required,min=1,dive"`
}

type IngestResponse struct {
	Accepted int `json:"accepted"`
}

// PublishIngestSectionMessage is the payload put on the ingest topic.
type PublishIngestSectionMessage struct {
	Content string `json:"content"`
	Section string `json:"section"`
	Week    string `json:"week,omitempty"`
	Topic   string `json:"topic,omitempty"`
}

type CorpusInfoResponse struct {
	Documents int64 `json:"documents"`
	Dimension int   `json:"dimension"`
}
