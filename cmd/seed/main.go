package main

import (
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/logger"
	"github.com/forkful/forkful/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "pizzas", Name: "Pizzas", Icon: "/uploads/icons/pizza.png", SortOrder: 1},
		{Slug: "sides", Name: "Sides", Icon: "/uploads/icons/sides.png", SortOrder: 2},
		{Slug: "drinks", Name: "Drinks", Icon: "/uploads/icons/drinks.png", SortOrder: 3},
		{Slug: "desserts", Name: "Desserts", Icon: "/uploads/icons/desserts.png", SortOrder: 4},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := make(map[string]uint, len(categories))
	for _, cat := range categories {
		var saved models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&saved).Error; err != nil {
			stdLog.Fatalf("Failed to load category %s: %v", cat.Slug, err)
		}
		categoryIDs[cat.Slug] = saved.ID
	}

	pizzaSizes := models.JSON{
		"Small":  9.99,
		"Medium": 12.99,
		"Large":  15.99,
	}
	pizzaToppings := models.JSON{
		"Extra Cheese": 1.50,
		"Pepperoni":    2.00,
		"Mushrooms":    1.00,
		"Olives":       1.00,
		"Bacon":        2.50,
		"Jalapenos":    1.00,
	}

	// 添加菜单商品
	products := []models.Product{
		{
			CategoryID:   categoryIDs["pizzas"],
			Slug:         "margherita",
			Name:         "Margherita",
			Description:  "San Marzano tomato sauce, fresh mozzarella, basil.",
			PriceAmount:  models.NewMoneyFromFloat(9.99),
			Image:        "/uploads/products/margherita.jpg",
			Tags:         models.StringArray{"vegetarian", "classic"},
			SizesJSON:    pizzaSizes,
			ToppingsJSON: pizzaToppings,
			IsPopular:    true,
			IsActive:     true,
			SortOrder:    1,
		},
		{
			CategoryID:   categoryIDs["pizzas"],
			Slug:         "pepperoni",
			Name:         "Pepperoni",
			Description:  "Loaded with pepperoni and extra mozzarella.",
			PriceAmount:  models.NewMoneyFromFloat(11.99),
			Image:        "/uploads/products/pepperoni.jpg",
			Tags:         models.StringArray{"bestseller"},
			SizesJSON:    models.JSON{"Small": 11.99, "Medium": 14.99, "Large": 17.99},
			ToppingsJSON: pizzaToppings,
			IsPopular:    true,
			IsActive:     true,
			SortOrder:    2,
		},
		{
			CategoryID:   categoryIDs["pizzas"],
			Slug:         "bbq-chicken",
			Name:         "BBQ Chicken",
			Description:  "Grilled chicken, smoky BBQ sauce, red onions, cilantro.",
			PriceAmount:  models.NewMoneyFromFloat(12.99),
			Image:        "/uploads/products/bbq-chicken.jpg",
			Tags:         models.StringArray{"spicy"},
			SizesJSON:    models.JSON{"Small": 12.99, "Medium": 15.99, "Large": 18.99},
			ToppingsJSON: pizzaToppings,
			IsActive:     true,
			SortOrder:    3,
		},
		{
			CategoryID:   categoryIDs["pizzas"],
			Slug:         "veggie-supreme",
			Name:         "Veggie Supreme",
			Description:  "Bell peppers, mushrooms, olives, onions, sweet corn.",
			PriceAmount:  models.NewMoneyFromFloat(11.49),
			Image:        "/uploads/products/veggie-supreme.jpg",
			Tags:         models.StringArray{"vegetarian"},
			SizesJSON:    models.JSON{"Small": 11.49, "Medium": 14.49, "Large": 17.49},
			ToppingsJSON: pizzaToppings,
			IsActive:     true,
			SortOrder:    4,
		},
		{
			CategoryID:  categoryIDs["sides"],
			Slug:        "garlic-bread",
			Name:        "Garlic Bread",
			Description: "Oven-baked with garlic butter and herbs.",
			PriceAmount: models.NewMoneyFromFloat(4.99),
			Image:       "/uploads/products/garlic-bread.jpg",
			Tags:        models.StringArray{"vegetarian"},
			IsPopular:   true,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["sides"],
			Slug:        "chicken-wings",
			Name:        "Chicken Wings",
			Description: "Eight crispy wings with your choice of dip.",
			PriceAmount: models.NewMoneyFromFloat(7.99),
			Image:       "/uploads/products/chicken-wings.jpg",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["drinks"],
			Slug:        "cola",
			Name:        "Cola",
			Description: "Chilled 500ml bottle.",
			PriceAmount: models.NewMoneyFromFloat(2.49),
			Image:       "/uploads/products/cola.jpg",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["drinks"],
			Slug:        "fresh-lemonade",
			Name:        "Fresh Lemonade",
			Description: "House-made with real lemons.",
			PriceAmount: models.NewMoneyFromFloat(3.49),
			Image:       "/uploads/products/fresh-lemonade.jpg",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["desserts"],
			Slug:        "chocolate-brownie",
			Name:        "Chocolate Brownie",
			Description: "Warm fudge brownie with chocolate drizzle.",
			PriceAmount: models.NewMoneyFromFloat(5.49),
			Image:       "/uploads/products/chocolate-brownie.jpg",
			IsPopular:   true,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["desserts"],
			Slug:        "cinnamon-sticks",
			Name:        "Cinnamon Sticks",
			Description: "Dusted with cinnamon sugar, served with icing dip.",
			PriceAmount: models.NewMoneyFromFloat(4.99),
			Image:       "/uploads/products/cinnamon-sticks.jpg",
			IsActive:    true,
			SortOrder:   2,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 初始化默认门店管理员账号
	if err := models.InitDefaultStaff("", ""); err != nil {
		stdLog.Printf("Failed to init default staff: %v", err)
	}

	stdLog.Println("Seed completed")
}
