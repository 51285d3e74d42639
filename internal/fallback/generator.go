package fallback

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/csaugo/analisevoc/internal/models"
	"github.com/sirupsen/logrus"
)

// Template pools for simulated posts. The tone mix (positive, negative,
// neutral) keeps the downstream sentiment breakdown plausible. Company
// name is interpolated into every template.
var twitterTemplates = []string{
	// positivos
	"Acabei de usar o %s e fiquei impressionado com a qualidade! 👏",
	"%s superou minhas expectativas. Recomendo muito! ⭐⭐⭐⭐⭐",
	"Atendimento do %s foi excepcional hoje. Parabéns! 🙌",
	"Produto do %s chegou antes do prazo. Muito satisfeito! 📦✨",
	"%s sempre inovando. Adoro essa empresa! 💙",
	"Melhor experiência que já tive com %s. Top demais! 🔥",
	"%s tem o melhor custo-benefício do mercado 💰",
	"Interface do app do %s está linda! Parabéns ao time de design 🎨",
	// negativos
	"%s me decepcionou hoje. Esperava mais... 😞",
	"Suporte do %s demorou 3 horas para responder. Inaceitável! 😡",
	"Produto do %s veio com defeito. Que frustração! 😤",
	"%s aumentou os preços sem avisar. Não gostei nada 📈💸",
	"App do %s travou 3 vezes hoje. Precisa melhorar urgente! 📱❌",
	"%s perdeu um cliente. Serviço péssimo! 👎",
	"Entrega do %s atrasou 1 semana. Sem comunicação nenhuma 📦⏰",
	// neutros
	"Alguém já usou o %s? Como foi a experiência? 🤔",
	"%s lançou um produto novo. Vou testar e depois conto 👀",
	"Comparando %s com outras opções do mercado 📊",
	"%s está com promoção. Vale a pena? 🏷️",
	"Tutorial de como usar o %s: [link] 📚",
	"%s vai participar da feira de tecnologia este ano 🏢",
	"Pesquisando sobre %s para um projeto da faculdade 🎓",
	"%s anunciou parceria com outra empresa 🤝",
}

var redditTemplates = []string{
	// positivos
	"Experiência incrível com %s - Review completo",
	"%s vale a pena? Minha análise após 6 meses de uso",
	"Por que %s é a melhor opção do mercado [Discussão]",
	"%s resolveu meu problema em minutos - Muito satisfeito!",
	"Comparação: %s vs concorrentes - %s ganhou",
	"%s superou todas as expectativas - AMA",
	"Dica: Como aproveitar melhor o %s",
	"%s tem o melhor atendimento que já vi",
	// negativos
	"%s me decepcionou - Alguém mais passou por isso?",
	"Problemas com %s - Preciso de ajuda",
	"%s piorou muito nos últimos meses",
	"Cancelei minha conta no %s - Motivos",
	"%s vs [Concorrente] - Por que mudei",
	"Cuidado com %s - Minha experiência ruim",
	"%s não cumpriu o prometido - Frustrado",
	"Alguém mais teve problemas com %s?",
	// neutros
	"Dúvidas sobre %s - Alguém pode ajudar?",
	"%s lançou novidade - O que acham?",
	"Pesquisa sobre %s para TCC",
	"%s está com promoção - Vale a pena?",
	"Tutorial: Como usar %s [Guia Completo]",
	"%s vs outras opções - Discussão",
	"Opinião imparcial sobre %s",
	"%s anunciou parceria - Thoughts?",
}

var redditSubreddits = []string{
	"brasil", "investimentos", "tecnologia", "startups",
	"financas", "reviews", "consumidores",
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generate produces between 8 and min(20, pool size) simulated posts for
// the company. This is explicitly fake data: callers must track
// provenance and surface it to the user.
func Generate(companyName string, platform models.Platform) []models.Post {
	templates := twitterTemplates
	if platform == models.PlatformReddit {
		templates = redditTemplates
	}

	minPosts := 8
	maxPosts := len(templates)
	if maxPosts > 20 {
		maxPosts = 20
	}
	numPosts := rand.Intn(maxPosts-minPosts+1) + minPosts

	order := rand.Perm(len(templates))
	now := time.Now()

	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		content := renderTemplate(templates[order[i]], companyName)

		baseEngagement := rand.Float64() * 100
		isViral := rand.Float64() < 0.1 // 10% chance

		var likes, retweets, replies int
		var subreddit string

		if platform == models.PlatformTwitter {
			if isViral {
				likes = int(baseEngagement*10 + rand.Float64()*500)
			} else {
				likes = int(baseEngagement + rand.Float64()*50)
			}
			retweets = int(float64(likes) * (0.1 + rand.Float64()*0.3))
			replies = int(float64(likes) * (0.05 + rand.Float64()*0.15))
		} else {
			// Reddit upvotes run lower, there is no retweet equivalent,
			// and discussions are comment-heavy
			if isViral {
				likes = int(baseEngagement*5 + rand.Float64()*200)
			} else {
				likes = int(baseEngagement*0.5 + rand.Float64()*25)
			}
			retweets = 0
			replies = int(float64(likes) * (0.2 + rand.Float64()*0.4))
			subreddit = redditSubreddits[rand.Intn(len(redditSubreddits))]
		}

		posts = append(posts, models.Post{
			ID:        fmt.Sprintf("fallback_%s_%d_%d_%s", platform, now.UnixMilli(), i, randomToken(9)),
			Content:   content,
			Author:    "user_" + randomToken(8),
			Likes:     likes,
			Retweets:  retweets,
			Replies:   replies,
			CreatedAt: now.Add(-time.Duration(rand.Int63n(int64(24 * time.Hour)))),
			Platform:  platform,
			Subreddit: subreddit,
		})
	}

	logrus.Debugf("Generated %d simulated %s posts for %q", len(posts), platform, companyName)
	return posts
}

// renderTemplate fills every %s placeholder with the company name; one
// reddit template mentions the company twice.
func renderTemplate(template, companyName string) string {
	args := make([]interface{}, countPlaceholders(template))
	for i := range args {
		args[i] = companyName
	}
	return fmt.Sprintf(template, args...)
}

func countPlaceholders(template string) int {
	count := 0
	for i := 0; i+1 < len(template); i++ {
		if template[i] == '%' && template[i+1] == 's' {
			count++
		}
	}
	return count
}

func randomToken(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
