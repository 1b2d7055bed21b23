// Package nfce contém o motor fiscal puro da NFC-e: chave de acesso,
// agregação de totais, máquina de status e payload do QR Code. Nenhuma
// dependência de persistência ou transporte.
package nfce

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/setxpro/nfce-api/internal/domain"
)

// ModeloNfce é o modelo fiscal fixo do documento (mod). NFC-e é sempre "65".
const ModeloNfce = "65"

// TipoEmissaoNormal é o tpEmis usado na emissão normal (1).
const TipoEmissaoNormal = 1

// pesos aplicados aos 43 dígitos de dados da chave, na ordem em que aparecem.
// Equivale ao ciclo 2..9 aplicado da direita para a esquerda.
var pesos = [43]int{
	4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2, 9, 8, 7,
	6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2,
}

// ChaveAcessoService gera e valida a chave de acesso de 44 dígitos.
type ChaveAcessoService struct{}

// NewChaveAcessoService cria o serviço.
func NewChaveAcessoService() *ChaveAcessoService {
	return &ChaveAcessoService{}
}

// Gerar monta a chave: UF(2) + AAMM(4) + CNPJ(14) + modelo(2) + série(3) +
// número(9) + tpEmis(1) + código numérico(8) + DV(1). Todos os campos são
// numéricos com zeros à esquerda.
func (s *ChaveAcessoService) Gerar(uf int, dataEmissao time.Time, cnpj, modelo string,
	serie, numero, tipoEmissao, codigoNumerico int) (string, error) {

	if len(cnpj) != 14 || !apenasDigitos(cnpj) {
		return "", fmt.Errorf("%w: CNPJ do emitente deve conter 14 dígitos", domain.ErrInvalidInput)
	}
	if serie <= 0 {
		return "", fmt.Errorf("%w: série deve ser maior que zero", domain.ErrInvalidInput)
	}
	if numero <= 0 {
		return "", fmt.Errorf("%w: número deve ser maior que zero", domain.ErrInvalidInput)
	}

	var chave strings.Builder
	chave.Grow(44)
	fmt.Fprintf(&chave, "%02d", uf)
	chave.WriteString(dataEmissao.Format("0601")) // AAMM
	chave.WriteString(cnpj)
	chave.WriteString(modelo)
	fmt.Fprintf(&chave, "%03d", serie)
	fmt.Fprintf(&chave, "%09d", numero)
	fmt.Fprintf(&chave, "%d", tipoEmissao)
	fmt.Fprintf(&chave, "%08d", codigoNumerico)

	dv := calcularDigitoVerificador(chave.String())
	fmt.Fprintf(&chave, "%d", dv)

	return chave.String(), nil
}

// GerarNfce gera a chave com o modelo fixo "65" e um código numérico
// aleatório de 8 dígitos em [10000000, 99999999). O sorteio não verifica
// colisão com chaves já emitidas; a unicidade efetiva vem da constraint de
// chave no armazenamento.
func (s *ChaveAcessoService) GerarNfce(uf int, dataEmissao time.Time, cnpj string,
	serie, numero, tipoEmissao int) (string, error) {

	codigoNumerico := rand.Intn(99999999-10000000) + 10000000
	return s.Gerar(uf, dataEmissao, cnpj, ModeloNfce, serie, numero, tipoEmissao, codigoNumerico)
}

// calcularDigitoVerificador aplica módulo 11 sobre os 43 dígitos de dados.
// resto < 2 resulta em DV 0; caso contrário DV = 11 - resto.
func calcularDigitoVerificador(dados string) int {
	soma := 0
	for i := 0; i < len(dados); i++ {
		soma += int(dados[i]-'0') * pesos[i]
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}

// Validar verifica comprimento, caracteres e DV. Falha fechado: qualquer
// chave malformada retorna false, nunca erro — a função é chamada sobre
// entrada externa não confiável.
func (s *ChaveAcessoService) Validar(chave string) bool {
	if len(chave) != 44 || !apenasDigitos(chave) {
		return false
	}
	informado := int(chave[43] - '0')
	return informado == calcularDigitoVerificador(chave[:43])
}

// Formatar insere um espaço a cada 4 dígitos, para exibição no DANFE.
// Passthrough se a chave não tiver 44 caracteres. Nunca usar o resultado
// como entrada de validação ou armazenamento.
func (s *ChaveAcessoService) Formatar(chave string) string {
	if len(chave) != 44 {
		return chave
	}
	var b strings.Builder
	b.Grow(44 + 10)
	for i := 0; i < len(chave); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(chave[i])
	}
	return b.String()
}

func apenasDigitos(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
