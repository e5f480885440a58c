package catalog

// Default returns the built-in catalog used when no catalog file is
// configured.
func Default() *Catalog {
	return &Catalog{
		Destinations: []Destination{
			{Name: "Москва", Synonyms: []string{"москва", "мск"}},
			{Name: "Санкт-Петербург", Synonyms: []string{"санкт-петербург", "петербург", "питер", "спб"}},
			{Name: "Сочи", Synonyms: []string{"сочи"}},
		},
		Products: []Product{
			{ID: 1, Name: "Wi-Fi в пути", Description: "Доступ в интернет на всём маршруте", BasePrice: 200, Category: "comfort"},
			{ID: 2, Name: "Страховка пассажира", Description: "Страхование на время поездки", BasePrice: 300, Category: "safety"},
			{ID: 3, Name: "Питание в вагоне-ресторане", Description: "Комплексный обед и ужин", BasePrice: 500, Category: "food"},
			{ID: 4, Name: "Постельное бельё премиум", Description: "Комплект повышенного комфорта", BasePrice: 150, Category: "comfort"},
			{ID: 5, Name: "Ранняя посадка", Description: "Посадка за 40 минут до отправления", BasePrice: 250, Category: "service"},
			{ID: 6, Name: "Трансфер от вокзала", Description: "Автомобиль до отеля по прибытии", BasePrice: 700, Category: "service"},
			{ID: 7, Name: "Экскурсионная программа", Description: "Обзорная экскурсия в день прибытия", BasePrice: 1200, Category: "leisure"},
			{ID: 8, Name: "Доступ в бизнес-зал", Description: "Зал ожидания повышенного комфорта", BasePrice: 900, Category: "comfort"},
		},
		Promotions: []Promotion{
			{ID: 1, Short: "Первый заказ -15%", Full: "Скидка 15% для новых клиентов на первое бронирование.", DiscountType: DiscountPercent, DiscountValue: 15},
			{ID: 2, Short: "Постоянный клиент -10%", Full: "Скидка 10% после успешных бронирований. Действует всегда.", DiscountType: DiscountPercent, DiscountValue: 10},
			{ID: 3, Short: "Сезонная скидка -20%", Full: "Скидка 20% в несезонные периоды.", DiscountType: DiscountPercent, DiscountValue: 20},
			{ID: 4, Short: "Групповая поездка -25%", Full: "Скидка 25% при бронировании от трёх человек.", DiscountType: DiscountPercent, DiscountValue: 25},
			{ID: 5, Short: "Раннее бронирование -30%", Full: "Скидка 30% при покупке за 60 и более дней до поездки.", DiscountType: DiscountPercent, DiscountValue: 30},
			{ID: 6, Short: "Скидка выходного дня -5%", Full: "Скидка 5% на поездки в субботу и воскресенье.", DiscountType: DiscountPercent, DiscountValue: 5},
		},
		Scenarios: []Scenario{
			{
				ID: "1", Name: "Бюджетный", DiscountPercent: 5,
				Description:         "Для экономных путешественников. Только самое необходимое.",
				ProductIDs:          []int{1, 2},
				RecommendedServices: []string{"Питание в вагоне-ресторане"},
			},
			{
				ID: "2", Name: "Стандартный", DiscountPercent: 10,
				Description:         "Комфортное путешествие для деловых поездок.",
				ProductIDs:          []int{1, 2, 3},
				RecommendedServices: []string{"Постельное бельё премиум"},
			},
			{
				ID: "3", Name: "Премиум", DiscountPercent: 15,
				Description:         "Максимальный комфорт для особых случаев.",
				ProductIDs:          []int{1, 2, 3, 4, 5},
				RecommendedServices: []string{"Трансфер от вокзала"},
			},
			{
				ID: "4", Name: "Семейный", DiscountPercent: 12,
				Description:         "Поездка всей семьёй: питание и комфорт для детей и взрослых.",
				ProductIDs:          []int{1, 2, 3, 4},
				RecommendedServices: []string{"Экскурсионная программа"},
			},
			{
				ID: "5", Name: "Бизнес", DiscountPercent: 20,
				Description:         "Для тех, кто работает в дороге: бизнес-зал и ранняя посадка.",
				ProductIDs:          []int{1, 2, 5, 8},
				RecommendedServices: []string{"Трансфер от вокзала"},
			},
		},
	}
}
