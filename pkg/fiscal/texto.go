package fiscal

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removedorAcentos decompõe em NFD e descarta as marcas diacríticas.
var removedorAcentos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// RemoverAcentos substitui caracteres acentuados pelos equivalentes ASCII
// ("Operação" -> "Operacao"). O schema da SEFAZ rejeita vários caracteres
// fora do ASCII básico em campos de texto.
func RemoverAcentos(s string) string {
	out, _, err := transform.String(removedorAcentos, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizarTexto prepara um texto livre para o XML: remove acentos, colapsa
// espaços consecutivos e apara as pontas.
func NormalizarTexto(s string) string {
	s = RemoverAcentos(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// TruncarTexto limita o texto a max runas, requisito dos campos com tamanho
// fixo no layout.
func TruncarTexto(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
