package model

// Document is a file belonging to a client, optionally tied to one of
// their consultations. Exactly one of Localizacao (local path) or URL
// (remote share address) is expected to be populated; the physical file
// itself is managed by the storage layer.
type Document struct {
	ID          int64  `json:"id"`
	Nome        string `json:"documento_nome"`
	Localizacao string `json:"documento_localizacao,omitempty"`
	URL         string `json:"documento_url,omitempty"`
	ClienteID   int64  `json:"cliente_id"`
	ConsultaID  *int64 `json:"consulta_id,omitempty"`
}

// Filing is a procedural filing (peca processual): a court document
// grouped by a free-form category rather than by client.
type Filing struct {
	ID          int64  `json:"id"`
	NomePeca    string `json:"nome_peca"`
	Categoria   string `json:"categoria"`
	Localizacao string `json:"documento_localizacao,omitempty"`
	URL         string `json:"documento_url,omitempty"`
}
