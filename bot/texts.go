package bot

import "finance-advisor/api/models"

type botText struct {
	ChooseLang string
	Welcome    string
	OpenApp    string
	AboutMeBtn string
	AboutMe    string
}

var texts = map[models.Language]botText{
	models.LanguageEN: {
		ChooseLang: "Please choose your language:",
		Welcome:    "Assalomu alaykum!\n\nI am your AI Financial Advisor.\nUse the WebApp to track your halal finances.",
		OpenApp:    "📱 Open Financial WebApp",
		AboutMeBtn: "ℹ️ About me",
		AboutMe:    "I'm Muhammadamin, 19 y.o. from Tashkent.\nI built this halal-focused AI finance assistant to help you manage money the smart way.",
	},
	models.LanguageUZ: {
		ChooseLang: "Iltimos, tilni tanlang:",
		Welcome:    "Assalomu alaykum!\n\nMen sizning AI moliyaviy maslahatchingizman.\nHalol tarzda moliyangizni nazorat qilish uchun WebApp'dan foydalaning.",
		OpenApp:    "📱 Moliyaviy WebAppni ochish",
		AboutMeBtn: "ℹ️ Men haqimda",
		AboutMe:    "Men Muhammadaminman, 19 yoshdaman, Toshkentdanman.\nBu halol moliya yordamchisini sizga pulni to‘g‘ri boshqarishga yordam berish uchun qurdim.",
	},
	models.LanguageRU: {
		ChooseLang: "Пожалуйста, выберите язык:",
		Welcome:    "Ассалому алейкум!\n\nЯ ваш ИИ финансовый советник.\nИспользуйте WebApp, чтобы вести халяльные финансы.",
		OpenApp:    "📱 Открыть финансовый WebApp",
		AboutMeBtn: "ℹ️ Обо мне",
		AboutMe:    "Я Мухаммадамин, 19 лет, из Ташкента.\nЯ создал этого халяльного финансового ассистента, чтобы помочь вам умно управлять деньгами.",
	},
}

func textFor(lang models.Language) botText {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[models.DefaultLanguage]
}
