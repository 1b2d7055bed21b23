package nfce

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QrCodeService monta a URL de consulta embutida no QR Code da NFC-e e
// valida URLs recebidas. A renderização da imagem fica a cargo de um
// codificador externo (o DANFE em PDF usa o componente de QR do maroto).
type QrCodeService struct {
	urlConsulta string // URL base do portal de consulta da SEFAZ
}

// NewQrCodeService cria o serviço com a URL base configurada.
func NewQrCodeService(urlConsulta string) *QrCodeService {
	return &QrCodeService{urlConsulta: urlConsulta}
}

// GerarURL monta o payload delimitado por pipe — chave | ambiente |
// AAAAMMDDHHMMSS | valor total com 2 casas sem o ponto | hash SHA-1 do
// CPF/CNPJ do destinatário (só quando informado) — codifica em Base64 e
// anexa como parâmetro ?p= à URL base.
func (s *QrCodeService) GerarURL(chaveAcesso string, ambiente int, dataEmissao time.Time,
	valorTotal decimal.Decimal, cpfCnpjDestinatario string) string {

	var p strings.Builder
	p.WriteString(chaveAcesso)
	p.WriteString("|")
	p.WriteString(strconv.Itoa(ambiente))
	p.WriteString("|")
	p.WriteString(dataEmissao.Format("20060102150405"))
	p.WriteString("|")
	p.WriteString(strings.ReplaceAll(valorTotal.StringFixed(2), ".", ""))
	p.WriteString("|")

	if strings.TrimSpace(cpfCnpjDestinatario) != "" {
		p.WriteString(hashSha1Upper(cpfCnpjDestinatario))
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(p.String()))
	return s.urlConsulta + "?p=" + encoded
}

// ValidarURL decodifica o parâmetro ?p= e confere o payload: pelo menos 4
// campos e o primeiro igual à chave esperada. Falha fechado — URLs
// malformadas retornam false, nunca erro.
func (s *QrCodeService) ValidarURL(urlQrCode, chaveAcesso string) bool {
	idx := strings.Index(urlQrCode, "?p=")
	if idx < 0 {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(urlQrCode[idx+3:])
	if err != nil {
		return false
	}
	partes := strings.Split(string(decoded), "|")
	// O payload sem destinatário termina em pipe; o split mantém o campo
	// vazio final, então a contagem mínima continua sendo 4.
	return len(partes) >= 4 && partes[0] == chaveAcesso
}

// hashSha1Upper devolve o digest SHA-1 em hexadecimal maiúsculo, formato
// exigido pelo manual do QR Code para o identificador do destinatário.
func hashSha1Upper(texto string) string {
	sum := sha1.Sum([]byte(texto))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
