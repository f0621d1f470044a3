package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		"site.name":               "GitHub Portfolio Generator",
		"lang.en":                 "English",
		"lang.pt_br":              "Português",
		"meta.title":              "%s | Portfolio",
		"meta.description":        "Portfolio of %s on GitHub",
		"home.lead":               "Turn your GitHub profile into a professional portfolio in seconds. Repositories, languages and projects are analysed automatically.",
		"home.placeholder":        "Enter a GitHub username",
		"home.submit":             "Generate my portfolio",
		"home.example":            "Example:",
		"home.recent":             "Recently viewed",
		"home.tip.title":          "Customization tip",
		"home.tip.body":           "To customize your portfolio, create a public repository named \"config\" on GitHub containing a \"portfolio.json\" file:",
		"profile.member_since":    "Member since %s",
		"stats.repos":             "Repositories",
		"stats.followers":         "Followers",
		"stats.stars":             "Total stars",
		"section.skills":          "Top technologies",
		"section.experience":      "Experience",
		"section.experience.lead": "A timeline of the most relevant professional experience",
		"section.featured":        "Featured projects",
		"repos.see_all":           "See all %d repositories on GitHub",
		"footer.generated":        "Portfolio generated automatically by",
		"error.title":             "Something went wrong",
		"error.not_found":         "User %s not found",
		"error.unavailable":       "Could not load the GitHub profile",
		"error.back":              "Back to home",
	},
	language.BrazilianPortuguese: {
		"site.name":               "GitHub Portfolio Generator",
		"lang.en":                 "English",
		"lang.pt_br":              "Português",
		"meta.title":              "%s | Portfólio",
		"meta.description":        "Portfólio de %s no GitHub",
		"home.lead":               "Transforme seu perfil GitHub em um portfólio profissional em segundos. Repositórios, linguagens e projetos são analisados automaticamente.",
		"home.placeholder":        "Digite seu username do GitHub",
		"home.submit":             "Gerar Meu Portfólio",
		"home.example":            "Exemplo:",
		"home.recent":             "Vistos recentemente",
		"home.tip.title":          "Dica de Personalização",
		"home.tip.body":           "Para personalizar seu portfólio, crie um repositório público chamado \"config\" no seu GitHub com um arquivo \"portfolio.json\":",
		"profile.member_since":    "Membro desde %s",
		"stats.repos":             "Repositórios",
		"stats.followers":         "Seguidores",
		"stats.stars":             "Stars Total",
		"section.skills":          "Principais Tecnologias",
		"section.experience":      "Experiências",
		"section.experience.lead": "Uma linha do tempo das experiências profissionais mais relevantes",
		"section.featured":        "Projetos em Destaque",
		"repos.see_all":           "Ver todos os %d repositórios no GitHub",
		"footer.generated":        "Portfólio gerado automaticamente via",
		"error.title":             "Algo deu errado",
		"error.not_found":         "Usuário %s não encontrado",
		"error.unavailable":       "Não foi possível carregar o perfil do GitHub",
		"error.back":              "Voltar ao início",
	},
}

func init() {
	for tag, msgs := range catalog {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}
