package models

// Request and response shapes for the HTTP API. Input structs list
// exactly the fields a client may set; anything else in the request
// body is dropped during parsing. Notably absent: file_path and
// preview_path on tracks, which only the upload coordinator assigns.

// RegisterRequest is the body of POST /users/.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserUpdateRequest is the body of PUT/PATCH /users/:id.
type UserUpdateRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// TokenPair is the locally issued JWT pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TrackMetadata carries the client-settable track fields, read from
// the multipart form on upload and from the JSON body on update.
type TrackMetadata struct {
	Title string `json:"title" form:"title" validate:"required,max=200"`
	Genre string `json:"genre" form:"genre" validate:"omitempty,max=100"`
	BPM   *int   `json:"bpm" form:"bpm" validate:"omitempty,gt=0"`
	Key   string `json:"key" form:"key" validate:"omitempty,max=50"`
}

// TrackUpdateRequest is the body of PUT/PATCH /tracks/:id. Fields left
// empty keep their stored value; file paths are not represented at all.
type TrackUpdateRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
	Genre string `json:"genre" validate:"omitempty,max=100"`
	BPM   *int   `json:"bpm" validate:"omitempty,gt=0"`
	Key   string `json:"key" validate:"omitempty,max=50"`
}

// LicenseRequest is the body of POST/PUT/PATCH /licenses/.
type LicenseRequest struct {
	TrackID       string   `json:"track_id" validate:"required"`
	UserID        *string  `json:"user_id" validate:"omitempty"`
	LicenseType   string   `json:"license_type" validate:"required,max=100"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	AgreementText string   `json:"agreement_text"`
	FilePath      string   `json:"file_path" validate:"omitempty,max=255"`
}

// PaginatedTracks is the page envelope for GET /tracks/.
type PaginatedTracks struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Track `json:"results"`
}
