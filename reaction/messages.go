package reaction

import (
	"fmt"
	"strconv"
	"strings"

	"finance-advisor/api/models"
)

// variants holds the three localized renderings of one canned message.
// Producing the wrong-language variant is a contract violation, so render is
// the only way out of this struct.
type variants struct {
	en string
	uz string
	ru string
}

func (v variants) render(lang models.Language, args ...any) string {
	switch lang {
	case models.LanguageUZ:
		return fmt.Sprintf(v.uz, args...)
	case models.LanguageRU:
		return fmt.Sprintf(v.ru, args...)
	default:
		return fmt.Sprintf(v.en, args...)
	}
}

var msgEducationSpend = variants{
	en: `🚀 Excellent investment! Spending on "%s" adds to your human capital. This will pay off 10x.`,
	uz: `🚀 Ajoyib sarmoya! "%s" uchun sarflangan pul bilimingizni oshiradi. Bu kelajakda 10 barobar qaytadi.`,
	ru: `🚀 Отличная инвестиция! Траты на "%s" увеличивают ваш капитал знаний. Это окупится в 10 раз.`,
}

var msgCoffeeHabit = variants{
	en: `☕ Again? %s for coffee is steep. Brewing at home costs ~3,000 UZS. Save the difference!`,
	uz: `☕ Yana kofemi? %s juda qimmat. Uyda damlasangiz ~3,000 so'm tushadi. Farqini tejang!`,
	ru: `☕ Опять? %s за кофе — это дорого. Дома дешевле (~3000 сум). Экономьте разницу!`,
}

var msgTaxiHabit = variants{
	en: `🚖 Taxi again? Could you have walked or taken the bus? Small leaks sink great ships.`,
	uz: `🚖 Yana taksimi? Piyoda yoki avtobusda yursangiz bo'lmasmidi? Kichik xarajatlar katta boylikni yeydi.`,
	ru: `🚖 Опять такси? Могли бы пройтись или поехать на автобусе? Малые траты топят большие корабли.`,
}

var msgHighSpend = variants{
	en: `💸 Huge spend alert! %s. I hope this was absolutely essential, %s.`,
	uz: `💸 Katta xarajat! %s. Umid qilamanki, bu juda zarur edi, %s.`,
	ru: `💸 Огромная трата! %s. Надеюсь, это было абсолютно необходимо, %s.`,
}

var msgLoanInterest = variants{
	en: `⛔ **HARAM ALERT**: You added a loan with %g%% interest. This is Riba. Pay this off immediately to purify your wealth.`,
	uz: `⛔ **HAROM**: Siz %g%% foizli qarz qo'shdingiz. Bu Ribo. Boyligingizni tozalash uchun buni darhol to'lang.`,
	ru: `⛔ **ХАРАМ**: Вы добавили кредит под %g%%. Это Риба. Погасите его немедленно.`,
}

var msgLoanGeneric = variants{
	en: `📉 Loan added. Ensure you have a repayment plan. Debt is a heavy burden in Islam.`,
	uz: `📉 Qarz qo'shildi. To'lash rejangiz borligiga ishonch hosil qiling. Qarz — Islomda og'ir yuk.`,
	ru: `📉 Долг добавлен. Убедитесь, что есть план погашения. Долг — тяжкое бремя в Исламе.`,
}

var msgLendingInterest = variants{
	en: `⛔ Asking for interest/return is Riba. Lend as Qard Hasan (charity loan) or investment partnership only.`,
	uz: `⛔ Foiz talab qilish — Ribo. Faqat Qarz Hasana (xolis qarz) yoki sherikchilik asosida bering.`,
	ru: `⛔ Просить проценты — это Риба. Одалживайте только как Кард Хасан (благотворительный долг) или партнерство.`,
}

var msgLendingGeneric = variants{
	en: `🤝 Ma'sha'Allah. Helping others with Qard Hasan is a great deed. Make sure to write it down (Surah Baqarah: 282).`,
	uz: `🤝 Ma'sha'Allah. Boshqalarga yordam berish savobli ish. Qarzni yozib qo'yishni unutmang (Baqara: 282).`,
	ru: `🤝 Машаллах. Помощь другим — благое дело. Не забудьте записать долг (Сура Бакара: 282).`,
}

var msgGoalSet = variants{
	en: `🎯 New goal "%s" set! Note: With ~10%% inflation, you might actually need %s by next year.`,
	uz: `🎯 Yangi maqsad "%s"! Eslatma: ~10%% inflatsiya bilan, kelasi yilga %s kerak bo'lishi mumkin.`,
	ru: `🎯 Цель "%s" добавлена! Учтите ~10%% инфляцию: вам может понадобиться %s.`,
}

// FormatAmount renders a currency amount with thousands separators and the
// UZS suffix, e.g. 1250000 → "1,250,000 UZS". Fractions are dropped; message
// text is informational, not accounting.
func FormatAmount(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatFloat(amount, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString(" UZS")
	return b.String()
}
