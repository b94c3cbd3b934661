package vocabulary

// Defaults returns the stock French vocabulary. Genre subcategories use the
// genre names of French catalog dumps; era, quality and tone subcategories
// name the rules of the default configuration.
func Defaults() *Seed {
	return &Seed{
		Genre: map[string][]string{
			"action":          {"action", "combat", "combats", "explosion", "explosions", "baston"},
			"aventure":        {"aventure", "aventures", "aventurier", "quête"},
			"comédie":         {"comédie", "comédies", "drôle", "drôles", "humour", "marrant", "comique", "rire", "rigolo"},
			"drame":           {"drame", "drames", "dramatique", "triste"},
			"science-fiction": {"science-fiction", "sf", "sci-fi", "futuriste", "espace", "extraterrestre", "extraterrestres", "robot", "robots"},
			"horreur":         {"horreur", "épouvante", "peur", "terreur", "zombie", "zombies", "monstre", "monstres"},
			"thriller":        {"thriller", "thrillers", "suspense", "tension"},
			"romance":         {"romance", "romantique", "amour", "amoureux"},
			"animation":       {"animation", "animé", "animés", "dessin animé", "dessins animés", "pixar"},
			"documentaire":    {"documentaire", "documentaires", "docu"},
			"familial":        {"famille", "familial", "enfant", "enfants"},
			"guerre":          {"guerre", "militaire", "soldat", "soldats", "bataille"},
			"crime":           {"policier", "crime", "crimes", "mafia", "gangster", "gangsters", "enquête"},
			"fantastique":     {"fantastique", "magie", "sorcier", "sorcière"},
			"mystère":         {"mystère", "mystères"},
			"western":         {"western", "westerns", "cowboy", "cowboys", "far west", "far-west"},
		},
		Theme: map[string][]string{
			"voiture":      {"voiture", "voitures", "course", "courses", "rallye", "automobile"},
			"super-héros":  {"super-héros", "superhéros", "marvel", "dc"},
			"sport":        {"sport", "sports", "football", "basket", "boxe", "tennis"},
			"fantasy":      {"fantasy", "dragon", "dragons", "elfe", "elfes", "médiéval"},
			"espionnage":   {"espionnage", "espion", "espions", "agent secret", "agents secrets", "cia"},
			"catastrophe":  {"catastrophe", "apocalypse", "post-apocalyptique", "fin du monde", "désastre"},
			"musical":      {"musical", "comédie musicale", "comédies musicales", "chanson", "danse"},
			"historique":   {"historique", "biopic", "biographie"},
		},
		Era: map[string][]string{
			"recent":  {"récent", "récents", "récente", "récentes", "nouveau", "nouveaux", "nouveauté", "nouveautés", "derniers"},
			"classic": {"classique", "classiques", "culte", "cultes", "ancien", "anciens", "vintage", "vieux"},
			"modern":  {"moderne", "modernes", "contemporain", "contemporains"},
			"1970s":   {"années 70", "années 1970", "seventies"},
			"1980s":   {"années 80", "années 1980", "eighties"},
			"1990s":   {"années 90", "années 1990", "nineties"},
			"2000s":   {"années 2000"},
			"2010s":   {"années 2010"},
		},
		Quality: map[string][]string{
			"popular":    {"populaire", "populaires", "connu", "connus", "célèbre", "célèbres", "succès", "blockbuster", "blockbusters"},
			"acclaimed":  {"acclamé", "acclamés", "critique", "récompensé", "récompensés", "récompense", "oscar", "oscars", "césar", "primé"},
			"hidden_gem": {"méconnu", "méconnus", "rare", "confidentiel", "découverte", "indie", "indépendant", "pépite", "perle rare"},
		},
		Tone: map[string][]string{
			"intense":    {"intense", "palpitant", "adrénaline", "haletant"},
			"light":      {"léger", "légère", "amusant", "divertissant", "feel good", "feel-good"},
			"serious":    {"sérieux", "profond", "réfléchi"},
			"emotional":  {"émouvant", "touchant", "émotion", "émotionnel", "larmes"},
			"scary":      {"terrifiant", "angoissant", "flippant"},
			"mysterious": {"mystérieux", "intrigant", "énigmatique", "énigme"},
		},
		StopWords: []string{
			// articles, determiners, pronouns
			"le", "la", "les", "un", "une", "des", "du", "au", "aux",
			"ce", "cet", "cette", "ces", "celui", "celle", "ceux", "celles",
			"mon", "ma", "mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "votre", "leur", "leurs",
			"je", "tu", "il", "elle", "nous", "vous", "ils", "elles", "on", "me", "moi", "te", "se",
			// elisions
			"d", "l", "j", "m", "n", "s", "t", "c", "qu", "jusqu", "lorsqu", "puisqu",
			// conjunctions, prepositions
			"et", "ou", "mais", "donc", "car", "ni", "or", "que", "qui", "quoi", "dont", "où",
			"dans", "sur", "sous", "par", "pour", "en", "vers", "avec", "sans", "de", "à",
			"entre", "chaque", "puis", "comme", "après", "avant",
			// verbs and fillers
			"être", "avoir", "faire", "dire", "aller", "voir", "vouloir", "pouvoir", "falloir",
			"est", "sont", "sera", "été", "était", "étaient", "soit", "suis", "sommes", "fait",
			"veux", "voudrais", "cherche", "recherche", "propose", "conseille", "recommande",
			"plus", "moins", "très", "bien", "mal", "tout", "tous", "toute", "toutes",
			"autre", "autres", "même", "aussi", "alors", "oui", "non", "peut",
			"histoire", "année", "années", "fois",
			// common English fillers
			"the", "a", "an", "of", "and", "with", "movie", "some",
		},
	}
}
