package dto

// CategoriaResponse exposes the fixed catalog: the stored code plus its
// display label.
type CategoriaResponse struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	NombreDisplay string `json:"nombre_display"`
}
