// Package fiscal contém catálogos e validações compartilhados da emissão
// fiscal brasileira: dígitos verificadores de CNPJ/CPF, tabelas de códigos
// e normalização de texto para o XML.
package fiscal

import (
	"fmt"
	"strings"
)

// pesos do primeiro e do segundo dígito verificador do CNPJ, aplicados da
// esquerda para a direita.
var (
	cnpjPesos1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjPesos2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidarCNPJ valida os dois dígitos verificadores do CNPJ (módulo 11).
// Aceita o número com ou sem pontuação ("12.345.678/0001-99" ou
// "12345678000199").
func ValidarCNPJ(cnpj string) error {
	digitos := extrairDigitos(cnpj)
	if len(digitos) != 14 {
		return fmt.Errorf("fiscal: CNPJ deve ter 14 dígitos, foram encontrados %d", len(digitos))
	}
	if todosIguais(digitos) {
		return fmt.Errorf("fiscal: CNPJ com todos os dígitos iguais é inválido")
	}

	dv1 := moduloOnzeCNPJ(digitos[:12], cnpjPesos1[:])
	if digitos[12] != dv1 {
		return fmt.Errorf("fiscal: primeiro dígito verificador do CNPJ inválido: esperado %c, recebido %c", dv1, digitos[12])
	}
	dv2 := moduloOnzeCNPJ(digitos[:13], cnpjPesos2[:])
	if digitos[13] != dv2 {
		return fmt.Errorf("fiscal: segundo dígito verificador do CNPJ inválido: esperado %c, recebido %c", dv2, digitos[13])
	}
	return nil
}

// ValidarCPF valida os dois dígitos verificadores do CPF (módulo 11).
func ValidarCPF(cpf string) error {
	digitos := extrairDigitos(cpf)
	if len(digitos) != 11 {
		return fmt.Errorf("fiscal: CPF deve ter 11 dígitos, foram encontrados %d", len(digitos))
	}
	if todosIguais(digitos) {
		return fmt.Errorf("fiscal: CPF com todos os dígitos iguais é inválido")
	}

	if dv := cpfDigito(digitos[:9], 10); digitos[9] != dv {
		return fmt.Errorf("fiscal: primeiro dígito verificador do CPF inválido: esperado %c, recebido %c", dv, digitos[9])
	}
	if dv := cpfDigito(digitos[:10], 11); digitos[10] != dv {
		return fmt.Errorf("fiscal: segundo dígito verificador do CPF inválido: esperado %c, recebido %c", dv, digitos[10])
	}
	return nil
}

// ValidarCpfCnpj decide pelo comprimento: 11 dígitos valida como CPF, 14
// como CNPJ.
func ValidarCpfCnpj(doc string) error {
	digitos := extrairDigitos(doc)
	switch len(digitos) {
	case 11:
		return ValidarCPF(doc)
	case 14:
		return ValidarCNPJ(doc)
	default:
		return fmt.Errorf("fiscal: documento deve ter 11 (CPF) ou 14 (CNPJ) dígitos, foram encontrados %d", len(digitos))
	}
}

// SomenteDigitos remove tudo que não for 0-9.
func SomenteDigitos(s string) string {
	return string(extrairDigitos(s))
}

func moduloOnzeCNPJ(base []byte, pesos []int) byte {
	soma := 0
	for i, d := range base {
		soma += int(d-'0') * pesos[i]
	}
	resto := soma % 11
	if resto < 2 {
		return '0'
	}
	return byte('0' + (11 - resto))
}

// cpfDigito calcula um DV do CPF com pesos decrescentes a partir de inicio.
func cpfDigito(base []byte, inicio int) byte {
	soma := 0
	for i, d := range base {
		soma += int(d-'0') * (inicio - i)
	}
	resto := (soma * 10) % 11
	if resto == 10 {
		resto = 0
	}
	return byte('0' + resto)
}

func extrairDigitos(s string) []byte {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return []byte(b.String())
}

func todosIguais(d []byte) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return len(d) > 0
}
