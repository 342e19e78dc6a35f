package taxonomy

// Keyword lists mix Spanish, English and Portuguese and are written without
// accents where possible. Matching normalizes both sides anyway.

var defaultGenericTerms = []string{
	"tecnologia", "technology",
	"datos", "data",
	"plataforma", "platform",
	"software",
}

var defaultBroad = []Category{
	{Name: "Politics", Keywords: []string{
		// es
		"presidente", "gobierno", "ministro", "asamblea", "congreso",
		"parlamento", "elecciones", "votacion", "reforma", "decreto",
		"partido", "candidato", "campana", "encuesta", "senado",
		// en
		"president", "government", "minister", "congress", "parliament",
		"election", "policy", "reform", "decree", "party",
		"candidate", "campaign", "senate", "poll",
		// pt
		"presidente", "governo", "ministro", "eleicao", "parlamento",
		"reforma", "partido", "candidato", "campanha", "senado",
	}},
	{Name: "Economy", Keywords: []string{
		"inflacion", "pib", "tasa de interes", "mercado", "deficit",
		"exportaciones", "importaciones", "dolar", "tipo de cambio",
		"desempleo", "impuestos", "tarifas", "deuda",
		"inflation", "gdp", "interest rate", "market", "deficit",
		"exports", "imports", "dollar", "unemployment",
		"taxes", "tariffs", "debt", "trade balance",
		"economia", "inflacao", "juros", "mercado", "pib",
		"desemprego", "impostos", "tarifas", "divida",
	}},
	{Name: "Business", Keywords: []string{
		"empresa", "negocio", "ingresos", "utilidades", "ganancias",
		"adquisicion", "fusion", "acuerdo", "contrato", "inversion",
		"ventas", "facturacion", "proveedores", "salida a bolsa", "oferta publica",
		"company", "business", "earnings", "profits", "merger",
		"acquisition", "deal", "contract", "investment", "startup",
		"sales", "revenue", "supplier", "ipo",
		"empresa", "negocios", "lucros", "fusao", "aquisicao",
		"investimento", "vendas", "receita", "fornecedor",
	}},
	{Name: "Technology", Keywords: []string{
		"tecnologia", "software", "ciberseguridad", "plataforma",
		"algoritmo", "nube", "datos", "chip", "semiconductores",
		"inteligencia artificial", "ia", "aplicacion", "redes sociales",
		"technology", "software", "cybersecurity", "platform",
		"algorithm", "cloud", "data", "chip", "semiconductor",
		"artificial intelligence", "ai", "app", "social media",
		"tecnologia", "dados", "seguranca cibernetica", "plataforma",
		"inteligencia artificial", "aplicativo", "rede social",
	}},
	{Name: "Health", Keywords: []string{
		"salud", "hospital", "vacuna", "virus", "pandemia", "brote",
		"salud publica", "epidemia", "dengue", "covid", "gripe",
		"health", "hospital", "vaccine", "virus", "pandemic", "outbreak",
		"public health", "epidemic", "covid", "flu",
		"saude", "hospital", "vacina", "virus", "pandemia",
		"surto", "covid", "gripe",
	}},
	{Name: "Sports", Keywords: []string{
		"deporte", "futbol", "baloncesto", "tenis", "copa",
		"liga", "equipo", "campeonato", "mundial", "goles",
		"partido", "marcador", "victoria", "derrota",
		"sports", "football", "soccer", "basketball", "tennis",
		"cup", "league", "team", "championship", "world cup",
		"match", "score", "win", "loss",
		"futebol", "time", "campeonato", "gol", "partida",
		"placar", "vitoria", "derrota",
	}},
	{Name: "Environment", Keywords: []string{
		"medioambiente", "clima", "cambio climatico", "emisiones",
		"co2", "deforestacion", "contaminacion", "biodiversidad",
		"huracan", "sequía", "inundacion", "incendio",
		"environment", "climate", "climate change", "emissions",
		"co2", "deforestation", "pollution", "biodiversity",
		"hurricane", "drought", "flood", "wildfire",
		"meio ambiente", "clima", "emissoes", "desmatamento",
		"poluicao", "biodiversidade", "seca", "enchente", "incendio",
	}},
	{Name: "Culture/Entertainment", Keywords: []string{
		"cultura", "cine", "pelicula", "musica", "arte", "teatro",
		"festival", "celebridad", "entretenimiento", "serie",
		"estreno", "taquilla", "concierto", "gira",
		"culture", "cinema", "movie", "music", "art", "theater",
		"festival", "celebrity", "entertainment", "series",
		"premiere", "box office", "concert", "tour",
		"cultura", "cinema", "filme", "musica", "arte", "festival",
		"estreia", "bilheteria", "show", "turne",
	}},
	{Name: "Crime/Law", Keywords: []string{
		"crimen", "delito", "arresto", "homicidio", "narcotrafico",
		"tribunal", "juzgado", "sentencia", "juicio",
		"corrupcion", "fiscalia", "policia", "allanamiento",
		"crime", "arrest", "homicide", "court", "trial", "sentence",
		"corruption", "prosecutor", "police", "raid",
		"crime", "prisao", "homicidio", "tribunal", "corrupcao",
		"policia", "busca e apreensao",
	}},
}

var defaultStrong = []Category{
	{Name: "Politics", Keywords: []string{
		"balotaje", "segunda vuelta", "encuesta electoral", "decreto ley",
		"boleta unica", "candidato presidencial", "gira presidencial",
		"runoff", "ballot", "election runoff", "presidential candidate",
		"executive order",
		"segundo turno", "urna", "candidato presidencial", "medida provisoria",
	}},
	{Name: "Economy", Keywords: []string{
		"inflacion", "recesion", "estanflacion", "devaluacion",
		"banco central", "tasas de interes", "riesgo pais", "salario minimo",
		"indice de precios", "suba de precios", "canasta basica",
		"inflation", "recession", "stagflation", "devaluation",
		"central bank", "interest rate", "cpi", "ppi", "minimum wage",
		"inflacao", "recessao", "desvalorizacao", "banco central",
		"taxa de juros", "salario minimo", "ipca",
	}},
	{Name: "Business", Keywords: []string{
		"adquisicion", "fusion", "oferta publica", "opa", "salida a bolsa",
		"resultados trimestrales", "facturacion", "ingresos record",
		"ronda de financiacion", "capital de riesgo", "despidos masivos",
		"acquisition", "merger", "ipo", "earnings", "quarterly results",
		"revenue record", "venture capital", "layoffs",
		"fusao", "aquisicao", "ipo", "resultados trimestrais",
		"receita recorde", "demissoes",
	}},
	{Name: "Technology", Keywords: []string{
		"inteligencia artificial", "ia", "machine learning", "ciberataque",
		"filtracion de datos", "chip", "semiconductor", "app",
		"redes sociales",
		"artificial intelligence", "ai", "machine learning", "cyberattack",
		"data breach", "chip", "semiconductor", "app", "social media",
		"inteligencia artificial", "ia", "aprendizado de maquina",
		"ataque cibernetico", "vazamento de dados", "semicondutor", "aplicativo",
	}},
	{Name: "Health", Keywords: []string{
		"brote", "dengue", "covid", "gripe", "vacunacion", "alerta sanitaria",
		"outbreak", "covid", "flu", "vaccination", "health alert",
		"surto", "dengue", "covid", "gripe", "vacinacao", "alerta sanitario",
	}},
	{Name: "Sports", Keywords: []string{
		"partido", "victoria", "derrota", "marcador", "final", "semifinal",
		"copa america", "mundial", "libertadores",
		"match", "win", "loss", "score", "final", "semifinal",
		"world cup",
		"partida", "vitoria", "derrota", "placar", "final", "semifinal",
	}},
	{Name: "Environment", Keywords: []string{
		"ola de calor", "incendio forestal", "sequía", "inundacion",
		"contaminacion", "emisiones", "deforestacion",
		"heat wave", "wildfire", "drought", "flood", "pollution",
		"emissions", "deforestation",
		"onda de calor", "incendio florestal", "seca", "enchente",
		"poluicao", "emissoes", "desmatamento",
	}},
	{Name: "Culture/Entertainment", Keywords: []string{
		"estreno", "taquilla", "concierto", "festival", "gira",
		"premiere", "box office", "concert", "festival", "tour",
		"estreia", "bilheteria", "show", "festival", "turne",
	}},
	{Name: "Crime/Law", Keywords: []string{
		"detencion", "allanamiento", "condena", "juicio oral",
		"investigacion fiscal", "lavado de dinero",
		"arrest", "raid", "conviction", "indictment", "money laundering",
		"prisao", "busca e apreensao", "condenacao", "acusacao",
		"lavagem de dinheiro",
	}},
}

// Default returns the built-in news taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		Broad:           NewTable(defaultBroad...),
		Strong:          NewTable(defaultStrong...),
		Fallback:        DefaultFallback,
		GenericCategory: "Technology",
		GenericTerms:    append([]string(nil), defaultGenericTerms...),
	}
}
