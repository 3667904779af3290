package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"

	ChatGreeting = "👋 Привет! Я могу ответить на любой вопрос в мире — от квантовой физики до рецептов пирогов. Просто спроси!"

	ChatValidationTitle       = "Ошибка"
	ChatValidationDescription = "Пожалуйста, введите вопрос"
	ChatReadyTitle            = "Ответ готов!"
	ChatReadyDescriptionFmt   = "Проверено: %s"
	ChatFailedTitle           = "Не удалось получить ответ"
)

var ChatGreetingSources = []string{"Wikipedia", "Wolfram Alpha", "10+ научных источников"}

var ChatQuickQuestions = []string{
	"Как работает черная дыра?",
	"История Древнего Рима",
	"Что такое квантовая запутанность?",
	"Рецепт идеального борща",
	"Как выучить английский?",
	"Объясни теорию относительности",
}

type CannedReplyTemplate struct {
	Content string
	Sources []string
}

var ChatCannedReplies = []CannedReplyTemplate{
	{
		Content: "Отличный вопрос! Позвольте объяснить подробно...\n\n🔬 **Научная основа:**\nСогласно данным Wikipedia и научных журналов, этот феномен объясняется фундаментальными законами физики.\n\n📊 **Ключевые моменты:**\n1. Первый важный аспект\n2. Второй критический фактор\n3. Практическое применение\n\n✅ **Вывод:** Это доказано международными исследованиями.",
		Sources: []string{"Wikipedia", "Nature Journal", "Scientific American"},
	},
	{
		Content: "Превосходный вопрос! 🎯\n\nПо данным авторитетных источников:\n\n**Исторический контекст:**\nЭто событие произошло в результате сложных социально-экономических процессов.\n\n**Современное понимание:**\nСовременная наука трактует это следующим образом...\n\n**Практическое значение:**\nЭто знание применяется в реальной жизни для...",
		Sources: []string{"Britannica", "History.com", "Academic databases"},
	},
	{
		Content: "Интересный вопрос! Давайте разберем по шагам:\n\n🧮 **Математический подход:**\nИспользуя формулы Wolfram Alpha, получаем точное решение.\n\n📐 **Геометрическая интерпретация:**\nВизуально это можно представить как...\n\n💡 **Практический совет:**\nВ реальной жизни это работает следующим образом...",
		Sources: []string{"Wolfram Alpha", "MathWorld", "Khan Academy"},
	},
}
