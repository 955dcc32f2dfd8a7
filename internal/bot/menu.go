package bot

import "leadbot/internal/booking"

// DefaultChannelURL is linked from the main menu when CHANNEL_URL is unset
const DefaultChannelURL = "https://t.me/xenox40"

// Main menu callback payloads
const (
	callbackAbout        = "about"
	callbackBenefits     = "benefits"
	callbackChooseFormat = "choose_format"
	callbackSignup       = "signup"
)

const textWelcome = "Добро пожаловать в XENON PRIVE.\n" +
	"Это цифровой сервис для индивидуальных ксеноновых ингаляций."

const textAbout = "XENON PRIVE — премиальный сервис индивидуальных ксеноновых ингаляций (40% ксенона / 60% кислорода). " +
	"Каждая сессия направлена на глубокую релаксацию, снятие стресса и улучшение эмоционального состояния. " +
	"Ингаляции проводятся квалифицированным специалистом в комфортной обстановке. " +
	"Совмещая современные технологии и персональный подход, XENON PRIVE помогает вам обрести внутреннее спокойствие и равновесие."

const textBenefits = "Что дают ксеноновые ингаляции:\n" +
	"• Глубокое расслабление и снижение уровня стресса.\n" +
	"• Снятие тревожности, улучшение настроения и эмоционального состояния.\n" +
	"• Обезболивающее действие, снижение мышечного напряжения.\n" +
	"• Улучшение качества сна и общее восстановление организма.\n" +
	"• Комфортная и безопасная неинвазивная процедура."

func (b *Bot) welcomeReply() booking.Reply {
	channel := b.channelURL
	if channel == "" {
		channel = DefaultChannelURL
	}

	return booking.Reply{
		Kind: booking.ReplySend,
		Text: textWelcome,
		Buttons: [][]booking.Button{
			{{Text: " О XENON PRIVE", Data: callbackAbout}},
			{{Text: " Что даёт ингаляция", Data: callbackBenefits}},
			{{Text: " Выбрать формат", Data: callbackChooseFormat}},
			{{Text: " Записаться", Data: callbackSignup}},
			{{Text: " Канал", URL: channel}},
		},
	}
}
