package profile

import (
	"fmt"
	"strings"

	"shield-data-lab/internal/randx"
)

// Fixed word lists stand in for a person/company name provider. External
// faker libraries draw from their own randomness, which would break the
// single-tape reproducibility contract, so names are composed from the run's
// seeded source instead.
var (
	firstNames = []string{
		"Julien", "Camille", "Sophie", "Nicolas", "Claire", "Antoine", "Marion",
		"Thomas", "Élise", "Lucas", "Manon", "Hugo", "Chloé", "Maxime", "Laura",
		"Romain", "Pauline", "Alexandre", "Inès", "Baptiste", "Sarah", "Quentin",
		"Émilie", "Mathieu", "Julie", "Pierre", "Anaïs", "Guillaume", "Léa", "David",
	}

	lastNames = []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
		"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel",
		"García", "Roux", "Fournier", "Morel", "Girard", "André", "Mercier",
		"Blanc", "Guérin", "Boyer", "Garnier", "Chevalier", "François", "Legrand",
	}

	emailDomains = []string{"example.com", "example.net", "example.org", "mail.example"}

	companyStems = []string{
		"Atelier", "Maison", "Comptoir", "Boutique", "Groupe", "Distri",
		"Techni", "Via", "Nova", "Alto", "Presta", "Inter",
	}

	companySuffixes = []string{
		"Durand", "Lambert", "du Centre", "de la Gare", "Martin", "Express",
		"Plus", "Services", "& Fils", "Concept", "Direct", "Premium",
	}

	cities = []string{
		"Paris", "Lyon", "Marseille", "Toulouse", "Bordeaux", "Nantes", "Lille",
		"Strasbourg", "Rennes", "Nice", "Montpellier", "Grenoble", "Dijon",
		"Angers", "Reims", "Tours", "Clermont-Ferrand", "Orléans",
	}
)

// personName draws a first/last name pair.
func personName(r *randx.Rand) (first, last string) {
	return firstNames[r.Intn(len(firstNames))], lastNames[r.Intn(len(lastNames))]
}

// emailFor derives a plausible unique address from a name and row number.
func emailFor(first, last string, n int, r *randx.Rand) string {
	local := strings.ToLower(stripAccents(first) + "." + stripAccents(last))
	return fmt.Sprintf("%s%d@%s", local, n, emailDomains[r.Intn(len(emailDomains))])
}

// companyName draws a merchant trade name.
func companyName(r *randx.Rand) string {
	return companyStems[r.Intn(len(companyStems))] + " " + companySuffixes[r.Intn(len(companySuffixes))]
}

// cityName draws a merchant city.
func cityName(r *randx.Rand) string {
	return cities[r.Intn(len(cities))]
}

// stripAccents maps the accented characters used by the name lists to ASCII
// for email local parts.
var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a", "ï", "i", "î", "i",
	"ç", "c", "É", "E", "È", "E", "Í", "i", "í", "i",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}
