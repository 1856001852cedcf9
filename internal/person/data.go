package person

// emailDomain is appended to every derived address.
const emailDomain = "exemplo.com"

// phonePrefix is the area code and mobile marker shared by every number.
const phonePrefix = "119"

// photoURLFormat takes a gender bucket and a portrait id.
const photoURLFormat = "https://randomuser.me/api/portraits/%s/%d.jpg"

// birth year and day ranges, inclusive. days stop at 28 so every month is valid.
const (
	minYear  = 1980
	maxYear  = 2005
	minDay   = 1
	maxDay   = 28
	minPhone = 10000000
	maxPhone = 99999999
	minPhoto = 1
	maxPhoto = 99
)

var firstNames = []string{
	"Ana", "Beatriz", "Carlos", "Daniel", "Eduardo", "Fernanda", "Gabriel", "Helena", "Igor", "Julia",
	"Karla", "Lucas", "Mariana", "Nicolas", "Olivia", "Paulo", "Quintino", "Rafael", "Sofia", "Thiago",
	"Ursula", "Vinicius", "Wagner", "Xavier", "Yuri", "Zara", "Amanda", "Bruno", "Camila", "Diego",
}

var lastNames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira", "Lima", "Gomes",
	"Costa", "Ribeiro", "Martins", "Carvalho", "Almeida", "Lopes", "Soares", "Fernandes", "Vieira", "Barbosa",
}

// FirstNames returns a copy of the candidate first names.
func FirstNames() []string {
	return append([]string(nil), firstNames...)
}

// LastNames returns a copy of the candidate last names.
func LastNames() []string {
	return append([]string(nil), lastNames...)
}
