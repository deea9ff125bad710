package enums

// FactSource marks where displayed fact content actually originated.
type FactSource string

const (
	FactSourceAPI      FactSource = "api"
	FactSourceFallback FactSource = "fallback"
)

// String implements fmt.Stringer.
func (f FactSource) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FactSource.
func (f FactSource) IsValid() bool {
	return f == FactSourceAPI || f == FactSourceFallback
}
