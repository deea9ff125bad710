package facts

import (
	"strconv"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
)

// Fact is one displayable animal fact together with the adoption profile
// it is presented against.
type Fact struct {
	ID             string           `json:"id"`
	Fact           string           `json:"fact"`
	Animal         string           `json:"animal"`
	Category       string           `json:"category"`
	Image          string           `json:"image"`
	Source         enums.FactSource `json:"source"`
	Name           string           `json:"name"`
	Breed          string           `json:"breed"`
	Age            string           `json:"age"`
	Location       string           `json:"location"`
	Personality    []string         `json:"personality"`
	AdoptionStatus string           `json:"adoption_status"`
	SpecialNeeds   string           `json:"special_needs,omitempty"`
}

// Result is a complete facts page payload. Facts are either all from the
// upstream API or all from the fallback dataset, never mixed.
type Result struct {
	Facts  []Fact           `json:"facts"`
	Source enums.FactSource `json:"source"`
}

type catProfile struct {
	name           string
	breed          string
	age            string
	location       string
	personality    []string
	adoptionStatus string
	specialNeeds   string
	image          string
}

var catProfiles = []catProfile{
	{
		name:           "Luna",
		breed:          "Persian",
		age:            "2 tahun",
		location:       "Jakarta Selatan",
		personality:    []string{"Penyayang", "Tenang", "Ramah"},
		adoptionStatus: "available",
		image:          "/images/luna-persian.png",
	},
	{
		name:           "Milo",
		breed:          "Maine Coon",
		age:            "3 tahun",
		location:       "Bandung",
		personality:    []string{"Aktif", "Sabar", "Cerdas"},
		adoptionStatus: "available",
		image:          "/images/milo-mainecoon.png",
	},
	{
		name:           "Bella",
		breed:          "Scottish Fold",
		age:            "1 tahun",
		location:       "Surabaya",
		personality:    []string{"Playful", "Energik", "Sosial"},
		adoptionStatus: "pending",
		image:          "/images/bella-scottishfold.png",
	},
	{
		name:           "Oscar",
		breed:          "British Shorthair",
		age:            "4 tahun",
		location:       "Yogyakarta",
		personality:    []string{"Mandiri", "Tenang", "Setia"},
		adoptionStatus: "available",
		image:          "/images/oscar-british.png",
	},
	{
		name:           "Coco",
		breed:          "Siamese",
		age:            "2 tahun",
		location:       "Medan",
		personality:    []string{"Vokal", "Cerdas", "Ekspresif"},
		adoptionStatus: "available",
		specialNeeds:   "Membutuhkan stimulasi mental yang tinggi",
		image:          "/images/coco-siamese.png",
	},
	{
		name:           "Shadow",
		breed:          "Bombay",
		age:            "3 tahun",
		location:       "Semarang",
		personality:    []string{"Loyal", "Affectionate", "Mengikuti"},
		adoptionStatus: "adopted",
		image:          "/images/shadow-bombay.png",
	},
}

var fallbackFactTexts = []string{
	"Kucing dapat tidur hingga 16 jam sehari.",
	"Kucing mengeong hanya untuk berkomunikasi dengan manusia.",
	"Kucing memiliki lebih dari 20 otot yang mengontrol telinga mereka.",
	"Kucing bisa melompat hingga enam kali panjang tubuhnya.",
	"Kucing mendengkur sebagai bentuk relaksasi atau saat sakit.",
	"Kucing domestik pertama kali dijinakkan di Timur Tengah sekitar 9.000 tahun lalu.",
}

// FallbackFacts returns the fixed offline dataset. IDs are stable so that
// favoriting a fallback fact survives refetches.
func FallbackFacts() []Fact {
	out := make([]Fact, 0, len(fallbackFactTexts))
	for i, text := range fallbackFactTexts {
		p := catProfiles[i]
		out = append(out, factFromProfile(
			"fallback-cat-"+strconv.Itoa(i+1),
			text,
			enums.FactSourceFallback,
			p,
		))
	}
	return out
}

func factFromProfile(id, text string, source enums.FactSource, p catProfile) Fact {
	return Fact{
		ID:             id,
		Fact:           text,
		Animal:         p.name,
		Category:       "Mamalia",
		Image:          p.image,
		Source:         source,
		Name:           p.name,
		Breed:          p.breed,
		Age:            p.age,
		Location:       p.location,
		Personality:    append([]string(nil), p.personality...),
		AdoptionStatus: p.adoptionStatus,
		SpecialNeeds:   p.specialNeeds,
	}
}
