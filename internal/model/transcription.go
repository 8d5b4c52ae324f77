package model

// TranscribeURLRequest is the JSON body of POST /transcribe when the audio is
// fetched from a URL.
type TranscribeURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// TranscribeResponse is returned by a successful POST /transcribe.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
