package domain

// ChartTheme é a tabela estática de cores entregue junto com os agregados
type ChartTheme struct {
	PrimaryBlue   string   `json:"primaryBlue"`
	SecondaryBlue string   `json:"secondaryBlue"`
	LightBlue     string   `json:"lightBlue"`
	AccentGreen   string   `json:"accentGreen"`
	White         string   `json:"white"`
	Series        []string `json:"series"`
}

// ColorAt devolve a cor da série para o índice, de forma cíclica
func (t ChartTheme) ColorAt(index int) string {
	if len(t.Series) == 0 {
		return t.LightBlue
	}
	if index < 0 {
		index = -index
	}
	return t.Series[index%len(t.Series)]
}
