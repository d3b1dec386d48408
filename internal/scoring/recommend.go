package scoring

import "github.com/samyrami/exporta-facil-bot/internal/diagnosis"

// MaxRecommendations caps the recommendation list. The report shows at
// most this many entries regardless of how many triggers fire.
const MaxRecommendations = 6

var baseRecommendations = map[diagnosis.Category][]string{
	diagnosis.CategoryPrincipiante: {
		"Inicie con un programa de capacitación básica en comercio internacional",
		"Considere alianzas con empresas exportadoras experimentadas",
		"Evalúe la implementación de certificaciones de calidad como primer paso",
	},
	diagnosis.CategoryIntermedio: {
		"Fortalezca las áreas identificadas como debilidades antes de exportar",
		"Realice estudios de mercado específicos para países objetivo",
		"Desarrolle un plan de internacionalización gradual y estructurado",
	},
	diagnosis.CategoryAvanzado: {
		"Su empresa está bien preparada, enfóquese en identificar mercados específicos",
		"Implemente herramientas de gestión de riesgos para operaciones internacionales",
		"Considere participar en ferias internacionales y misiones comerciales",
	},
	diagnosis.CategoryExperto: {
		"Su empresa tiene excelente preparación exportadora",
		"Explore mercados más exigentes y de mayor valor agregado",
		"Considere estrategias de expansión internacional más agresivas",
	},
}

// Keyword triggers add targeted recommendations when the weaknesses
// mention the matching theme. Matching is lowercase substring so both
// "certificación" and "certificaciones" hit.
var keywordRecommendations = []struct {
	keyword string
	text    string
}{
	{"certificacion", "Priorice la obtención de certificaciones internacionales reconocidas en su sector (ISO, HACCP, Global GAP)"},
	{"certificación", "Priorice la obtención de certificaciones internacionales reconocidas en su sector (ISO, HACCP, Global GAP)"},
	{"logístic", "Optimice su cadena logística con operadores especializados en comercio exterior"},
	{"personal", "Invierta en la formación de su equipo en comercio internacional y gestión de exportaciones"},
	{"tamaño", "Explore esquemas de exportación asociativa o indirecta acordes al tamaño actual de la empresa"},
}

const maxKeywordExtras = 3

// Recommend builds the deterministic recommendation list for a band
// and the observed weaknesses.
func Recommend(category diagnosis.Category, weaknesses []string) []string {
	recs := append([]string{}, baseRecommendations[category]...)

	extras := 0
	seen := map[string]bool{}
	for _, kw := range keywordRecommendations {
		if extras >= maxKeywordExtras {
			break
		}
		if seen[kw.text] || !contains(weaknesses, kw.keyword) {
			continue
		}
		recs = append(recs, kw.text)
		seen[kw.text] = true
		extras++
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
