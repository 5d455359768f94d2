package directory

type Currency struct {
	ID   uint
	Code string
}

type Country struct {
	ID   uint
	Name string
}

type StateProvince struct {
	ID   uint
	Name string
}
