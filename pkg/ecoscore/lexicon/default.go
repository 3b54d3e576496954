package lexicon

// Default returns the built-in lexicon: nine categories of Portuguese
// sustainability vocabulary with hand-tuned weights and per-category
// factors. Weights sit in [-0.5, 1.3].
func Default() *Lexicon {
	return &Lexicon{contexts: map[string]Context{
		"Water": {
			Factor: 1.2,
			Concepts: []Concept{
				{Name: "banho", Synonyms: []string{"banho", "banhar", "ducha"}, Weight: 0.8},
				{Name: "torneira", Synonyms: []string{"torneira", "chuveiro", "torneira aberta"}, Weight: 0.7},
				{Name: "reutilizar", Synonyms: []string{"reutilizar", "reaproveitar", "usar novamente"}, Weight: 1.0},
				{Name: "vazamento", Synonyms: []string{"vazamento", "vazando", "vazou"}, Weight: 0.9},
				{Name: "chuva", Synonyms: []string{"água da chuva", "coletar chuva"}, Weight: 0.8},
			},
		},
		"Energy": {
			Factor: 1.3,
			Concepts: []Concept{
				{Name: "luz", Synonyms: []string{"luz", "luzes", "lâmpada"}, Weight: 0.7},
				{Name: "desligar", Synonyms: []string{"desligar", "desliguei", "desligado"}, Weight: 0.8},
				{Name: "eletrônico", Synonyms: []string{"eletrônico", "eletrodoméstico", "aparelho"}, Weight: 0.7},
				{Name: "solar", Synonyms: []string{"solar", "painel solar", "energia solar"}, Weight: 1.2},
				{Name: "eletricidade", Synonyms: []string{"eletricidade", "energia elétrica"}, Weight: 0.9},
			},
		},
		"Mobility": {
			Factor: 1.4,
			Concepts: []Concept{
				{Name: "bicicleta", Synonyms: []string{"bicicleta", "bike", "pedalar"}, Weight: 1.1},
				{Name: "caminhar", Synonyms: []string{"caminhar", "andando", "a pé"}, Weight: 0.9},
				{Name: "transporte", Synonyms: []string{"ônibus", "metrô", "trem", "transporte público"}, Weight: 0.8},
				{Name: "carona", Synonyms: []string{"carona", "carona solidária"}, Weight: 0.7},
				{Name: "veículo", Synonyms: []string{"carro", "moto", "veículo"}, Weight: -0.5},
			},
		},
		"Food": {
			Factor: 1.1,
			Concepts: []Concept{
				{Name: "orgânico", Synonyms: []string{"orgânico", "sem agrotóxico"}, Weight: 1.2},
				{Name: "vegetariano", Synonyms: []string{"vegetariano", "vegetariana"}, Weight: 1.1},
				{Name: "vegano", Synonyms: []string{"vegano", "vegana"}, Weight: 1.1},
				{Name: "horta", Synonyms: []string{"horta", "plantar", "cultivar"}, Weight: 1.0},
				{Name: "desperdício", Synonyms: []string{"desperdício", "desperdiçar", "desperdiçando"}, Weight: 0.9},
			},
		},
		"Waste": {
			Factor: 1.2,
			Concepts: []Concept{
				{Name: "reciclar", Synonyms: []string{"reciclar", "reciclagem"}, Weight: 1.2},
				{Name: "compostagem", Synonyms: []string{"compostagem", "compostar"}, Weight: 1.1},
				{Name: "lixo", Synonyms: []string{"lixo", "resíduo"}, Weight: 0.8},
				{Name: "reduzir", Synonyms: []string{"reduzir", "redução"}, Weight: 1.0},
				{Name: "reutilizar", Synonyms: []string{"reutilizar", "reaproveitar"}, Weight: 1.1},
			},
		},
		"Wellbeing": {
			Factor: 1.0,
			Concepts: []Concept{
				{Name: "meditação", Synonyms: []string{"meditação", "meditar"}, Weight: 0.9},
				{Name: "yoga", Synonyms: []string{"yoga", "ioga"}, Weight: 0.9},
				{Name: "exercício", Synonyms: []string{"exercício", "atividade física"}, Weight: 0.8},
				{Name: "saúde", Synonyms: []string{"saúde", "saudável"}, Weight: 0.8},
				{Name: "qualidade de vida", Synonyms: []string{"qualidade de vida", "bem-estar"}, Weight: 1.0},
			},
		},
		"Conscious Consumption": {
			Factor: 1.1,
			Concepts: []Concept{
				{Name: "sustentável", Synonyms: []string{"sustentável", "sustentabilidade"}, Weight: 1.2},
				{Name: "consciente", Synonyms: []string{"consciente", "consciência"}, Weight: 1.1},
				{Name: "ecológico", Synonyms: []string{"ecológico", "ecológica"}, Weight: 1.1},
				{Name: "responsável", Synonyms: []string{"responsável", "responsabilidade"}, Weight: 1.0},
				{Name: "desperdício zero", Synonyms: []string{"desperdício zero", "lixo zero"}, Weight: 1.3},
			},
		},
		"Environmental Education": {
			Factor: 1.1,
			Concepts: []Concept{
				{Name: "ensinar", Synonyms: []string{"ensinar", "educar", "explicar"}, Weight: 1.0},
				{Name: "oficina", Synonyms: []string{"oficina", "workshop", "curso"}, Weight: 1.1},
				{Name: "palestra", Synonyms: []string{"palestra", "apresentação"}, Weight: 1.0},
				{Name: "conscientização", Synonyms: []string{"conscientização", "conscientizar"}, Weight: 1.2},
				{Name: "projeto", Synonyms: []string{"projeto", "iniciativa"}, Weight: 1.0},
			},
		},
		"Green Technology": {
			Factor: 1.2,
			Concepts: []Concept{
				{Name: "energia renovável", Synonyms: []string{"energia renovável", "fonte limpa"}, Weight: 1.3},
				{Name: "sustentabilidade", Synonyms: []string{"sustentabilidade", "sustentável"}, Weight: 1.2},
				{Name: "eficiência energética", Synonyms: []string{"eficiência energética", "economia de energia"}, Weight: 1.2},
				{Name: "inovação sustentável", Synonyms: []string{"inovação sustentável", "tecnologia limpa"}, Weight: 1.3},
				{Name: "painel solar", Synonyms: []string{"painel solar", "energia solar"}, Weight: 1.2},
			},
		},
	}}
}
