package registry

// IBGE assigns every federative unit a two-digit numeric code, which is also
// the prefix of each municipality's seven-digit territory code.
var ufToState = map[int]string{
	11: "RO", 12: "AC", 13: "AM", 14: "RR", 15: "PA", 16: "AP", 17: "TO",
	21: "MA", 22: "PI", 23: "CE", 24: "RN", 25: "PB", 26: "PE", 27: "AL",
	28: "SE", 29: "BA",
	31: "MG", 32: "ES", 33: "RJ", 35: "SP",
	41: "PR", 42: "SC", 43: "RS",
	50: "MS", 51: "MT", 52: "GO", 53: "DF",
}

var stateToUF = func() map[string]int {
	m := make(map[string]int, len(ufToState))
	for uf, state := range ufToState {
		m[state] = uf
	}
	return m
}()

// StateForUF returns the two-letter state code for a numeric UF code.
func StateForUF(uf int) (string, bool) {
	state, ok := ufToState[uf]
	return state, ok
}

// UFForState returns the numeric UF code for a two-letter state code.
func UFForState(state string) (int, bool) {
	uf, ok := stateToUF[state]
	return uf, ok
}

// StateForTerritory derives the state code from a territory code's two-digit
// UF prefix.
func StateForTerritory(territoryCode int64) (string, bool) {
	return StateForUF(int(territoryCode / 100000))
}
