package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"max=320"`
	Password string `json:"password" validate:"max=1024"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// --- Leads ---

type createLeadRequest struct {
	Name    string `json:"name"    validate:"max=200"`
	Email   string `json:"email"   validate:"max=320"`
	Message string `json:"message" validate:"max=5000"`
	Source  string `json:"source"  validate:"max=100"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"max=32"`
}

type addNoteRequest struct {
	Text string `json:"text" validate:"max=2000"`
}
