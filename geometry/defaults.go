package geometry

import "math/big"

// Reference moduli of the squaring circuit this tool was written against.
// Runs against other moduli pass them through configuration.
var (
	// Modulus1024 is the fixed 1024-bit test modulus of the reference
	// design (64 non-redundant 16-bit elements).
	Modulus1024 = mustInt("124066695684124741398798927404814432744698427125735684128131855064976895337309138910015071214657674309443149407457493434579063840841220334555160125016331040933690674569571217337630239191517205721310197608387239846364360850220896772964978569683229449266819903414117058030106528073928633017118689826625594484331")

	// Modulus2048 is the 2048-bit modulus used with 128 non-redundant
	// elements.
	Modulus2048 = mustInt("6314466083072888893799357126131292332363298818330841375588990772701957128924885547308446055753206513618346628848948088663500368480396588171361987660521897267810162280557475393838308261759713218926668611776954526391570120690939973680089721274464666423319187806830552067951253070082020241246233982410737753705127344494169501180975241890667963858754856319805507273709904397119733614666701543905360152543373982524579313575317653646331989064651402133985265800341991903982192844710212464887459388853582070318084289023209710907032396934919962778995323320184064522476463966355937367009369212758092086293198727008292431243681")

	// ModulusSmall is a 128-bit modulus small enough for exhaustive tests
	// and quick smoke runs.
	ModulusSmall = mustInt("302934307671667531413257853548643485645")
)

// DefaultConfig returns the reference configuration: the 1024-bit test
// modulus split into 64 16-bit words for the reduction tables, and 64
// 35-bit symbols over a 33-bit radix for the adder terms.
func DefaultConfig() Config {
	return Config{
		Modulus: new(big.Int).Set(Modulus1024),
		Word: Word{
			WordLen:              16,
			NonRedundantElements: 64,
			RedundantElements:    2,
			NumSegments:          1,
			ExtraElements:        2,
			TableCount:           33,
		},
		Radix: Radix{
			LogNumSymbols: 5,
			LogRadix:      33,
		},
		TermUpperBound: DefaultTermUpperBound,
	}
}

// DefaultTermUpperBound is the reference exclusive bound of the bit-position
// term range. It over-provisions the 1024-bit geometry (whose minimum is
// 190); the surplus indices produce empty terms, matching the natural
// termination of the decomposition at the top of the representation.
const DefaultTermUpperBound = 250

func mustInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("geometry: invalid modulus literal")
	}
	return v
}
