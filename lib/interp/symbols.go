package interp

// SymbolTable holds variable values and label line numbers. The two live in
// separate maps so a variable can never shadow a label.
type SymbolTable struct {
	vars   map[string]float64
	labels map[string]int
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		vars:   make(map[string]float64),
		labels: make(map[string]int),
	}
}

func (s *SymbolTable) Get(name string) (float64, bool) {
	v, ok := s.vars[name]
	return v, ok
}

func (s *SymbolTable) Set(name string, v float64) {
	s.vars[name] = v
}

func (s *SymbolTable) DefineLabel(name string, line int) {
	s.labels[name] = line
}

func (s *SymbolTable) Label(name string) (int, bool) {
	line, ok := s.labels[name]
	return line, ok
}

// Vars returns a copy of every variable and its value.
func (s *SymbolTable) Vars() map[string]float64 {
	out := make(map[string]float64, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}
