package products

import "time"

// Product is one catalog entry. Prices are whole rupiah.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"original_price,omitempty"`
	Discount      int       `json:"discount"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	Material      string    `json:"material"`
	IsNew         bool      `json:"is_new"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
}

// DefaultCatalog is the static storefront assortment. The catalog itself is
// owned elsewhere; this fixture backs the filter/sort surface.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "ec-001",
			Name:        "Set Keranjang Serat Kelapa",
			Description: "Keranjang anyaman tangan dari serat kelapa pilihan.",
			Price:       299990,
			Discount:    0,
			Image:       "/images/product-1.webp",
			Category:    "Dekorasi Rumah",
			Material:    "Serat Kelapa",
			Featured:    true,
			CreatedAt:   time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "ec-002",
			Name:          "Set Peralatan Makan Bambu",
			Description:   "Peralatan makan lengkap dari bambu berkelanjutan.",
			Price:         199990,
			OriginalPrice: 249990,
			Discount:      20,
			Image:         "/images/product-2.webp",
			Category:      "Dapur",
			Material:      "Bambu",
			Featured:      true,
			CreatedAt:     time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "ec-003",
			Name:        "Tas Belanja Eceng Gondok",
			Description: "Tas belanja kuat dari anyaman eceng gondok.",
			Price:       149990,
			Discount:    0,
			Image:       "/images/product-3.webp",
			Category:    "Tas",
			Material:    "Eceng Gondok",
			IsNew:       true,
			CreatedAt:   time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "ec-004",
			Name:          "Lampu Gantung Rotan",
			Description:   "Lampu gantung rotan dengan pola anyaman tradisional.",
			Price:         389990,
			OriginalPrice: 459990,
			Discount:      15,
			Image:         "/images/product-4.webp",
			Category:      "Dekorasi Rumah",
			Material:      "Rotan",
			CreatedAt:     time.Date(2024, time.November, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "ec-005",
			Name:        "Piring Saji Kayu Jati",
			Description: "Piring saji dari kayu jati bekas dengan finishing alami.",
			Price:       229990,
			Discount:    0,
			Image:       "/images/product-5.webp",
			Category:    "Dapur",
			Material:    "Kayu Jati",
			IsNew:       true,
			Featured:    true,
			CreatedAt:   time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "ec-006",
			Name:        "Tikar Pandan Premium",
			Description: "Tikar anyaman daun pandan untuk ruang keluarga.",
			Price:       179990,
			Discount:    0,
			Image:       "/images/product-6.webp",
			Category:    "Dekorasi Rumah",
			Material:    "Daun Pandan",
			CreatedAt:   time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "ec-007",
			Name:          "Gelas Batok Kelapa",
			Description:   "Set gelas dari batok kelapa dengan tatakan.",
			Price:         89990,
			OriginalPrice: 119990,
			Discount:      25,
			Image:         "/images/product-7.webp",
			Category:      "Dapur",
			Material:      "Serat Kelapa",
			CreatedAt:     time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "ec-008",
			Name:        "Kotak Penyimpanan Bambu",
			Description: "Kotak serbaguna bertutup dari bilah bambu.",
			Price:       129990,
			Discount:    0,
			Image:       "/images/product-8.webp",
			Category:    "Penyimpanan",
			Material:    "Bambu",
			IsNew:       true,
			CreatedAt:   time.Date(2025, time.April, 29, 0, 0, 0, 0, time.UTC),
		},
	}
}
