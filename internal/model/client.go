package model

// Client is a person the office works for, keyed by their CPF.
// CPF is unique across all clients; deleting a client cascades to their
// consultations and documents at the database level.
type Client struct {
	ID              int64      `json:"id"`
	NomeCliente     string     `json:"nome_cliente"`
	CPFCliente      string     `json:"cpf_cliente"`
	DataCadastro    Timestamp  `json:"data_cadastro"`
	DataAtualizacao *Timestamp `json:"data_atualizacao"`
}

// Consultation is a scheduled legal consultation. Client name and CPF are
// denormalized copies kept in sync with the owning Client row.
type Consultation struct {
	ID               int64     `json:"id"`
	NomeCliente      string    `json:"nome_cliente"`
	CPFCliente       string    `json:"cpf_cliente"`
	DataConsulta     Date      `json:"data_consulta"`
	HorarioConsulta  TimeOfDay `json:"horario_consulta"`
	DetalhesConsulta string    `json:"detalhes_consulta"`
	ClienteID        int64     `json:"cliente_id"`
}
