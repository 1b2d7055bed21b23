package fiscal

// ufCodigos tabela IBGE código -> sigla da unidade federativa.
var ufCodigos = map[int]string{
	11: "RO", 12: "AC", 13: "AM", 14: "RR", 15: "PA", 16: "AP", 17: "TO",
	21: "MA", 22: "PI", 23: "CE", 24: "RN", 25: "PB", 26: "PE", 27: "AL",
	28: "SE", 29: "BA",
	31: "MG", 32: "ES", 33: "RJ", 35: "SP",
	41: "PR", 42: "SC", 43: "RS",
	50: "MS", 51: "MT", 52: "GO", 53: "DF",
}

// ufSiglas índice inverso sigla -> código IBGE.
var ufSiglas = func() map[string]int {
	m := make(map[string]int, len(ufCodigos))
	for codigo, sigla := range ufCodigos {
		m[sigla] = codigo
	}
	return m
}()

// UFValida informa se o código IBGE corresponde a uma unidade federativa.
func UFValida(codigo int) bool {
	_, ok := ufCodigos[codigo]
	return ok
}

// SiglaUF devolve a sigla da UF para o código IBGE ("" se desconhecido).
func SiglaUF(codigo int) string {
	return ufCodigos[codigo]
}

// CodigoUF devolve o código IBGE da sigla (0 se desconhecida).
func CodigoUF(sigla string) int {
	return ufSiglas[sigla]
}

// cstICMSSimples CSOSN aceitos para emitentes do Simples Nacional, mais os
// CSTs do regime normal usados em venda ao consumidor.
var cstICMS = map[string]struct{}{
	// regime normal
	"00": {}, "20": {}, "40": {}, "41": {}, "60": {}, "90": {},
	// Simples Nacional (CSOSN)
	"101": {}, "102": {}, "103": {}, "300": {}, "400": {}, "500": {}, "900": {},
}

// cstPisCofins CSTs de PIS e COFINS aceitos na saída.
var cstPisCofins = map[string]struct{}{
	"01": {}, "02": {}, "04": {}, "05": {}, "06": {}, "07": {},
	"08": {}, "09": {}, "49": {}, "99": {},
}

// CstICMSValido informa se o CST/CSOSN de ICMS é aceito.
func CstICMSValido(cst string) bool {
	_, ok := cstICMS[cst]
	return ok
}

// CstPisCofinsValido informa se o CST de PIS/COFINS é aceito.
func CstPisCofinsValido(cst string) bool {
	_, ok := cstPisCofins[cst]
	return ok
}
