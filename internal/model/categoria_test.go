package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNombreDisplay(t *testing.T) {
	assert.Equal(t, "Vitaminas", Categoria{Nombre: CategoriaVitaminas}.NombreDisplay())
	assert.Equal(t, "Antiinflamatorios", Categoria{Nombre: CategoriaAntiinflamatorios}.NombreDisplay())

	// Unknown codes fall back to the raw value
	assert.Equal(t, "HOMEOPATIA", Categoria{Nombre: "HOMEOPATIA"}.NombreDisplay())
}

func TestCategoriaValida(t *testing.T) {
	for _, nombre := range NombresCategoria() {
		assert.True(t, CategoriaValida(nombre), nombre)
	}
	assert.False(t, CategoriaValida("homeopatia"))
	assert.False(t, CategoriaValida(""))
}
