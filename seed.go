package main

import (
	"log"

	"github.com/shopspring/decimal"

	"storefront/model"
	"storefront/service"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var demoCatalog = []model.ProductInput{
	{Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life.", Price: price("199.99"), Stock: 50, ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop"},
	{Name: "Smart Watch", Description: "Feature-rich smartwatch with fitness tracking, heart rate monitor, and GPS.", Price: price("299.99"), Stock: 30, ImageURL: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop"},
	{Name: "Laptop Stand", Description: "Ergonomic aluminum laptop stand for better posture and improved airflow.", Price: price("49.99"), Stock: 100, ImageURL: "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=500&h=500&fit=crop"},
	{Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with tactile switches.", Price: price("149.99"), Stock: 45, ImageURL: ""},
	{Name: "Wireless Mouse", Description: "Precision wireless mouse with ergonomic design.", Price: price("39.99"), Stock: 75, ImageURL: ""},
	{Name: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and card readers.", Price: price("59.99"), Stock: 60, ImageURL: ""},
	{Name: "Portable Charger", Description: "20000mAh portable charger with fast charging.", Price: price("34.99"), Stock: 80, ImageURL: ""},
	{Name: "Phone Case", Description: "Shockproof phone case with card holder.", Price: price("24.99"), Stock: 120, ImageURL: ""},
	{Name: "Bluetooth Speaker", Description: "Waterproof bluetooth speaker with 360-degree sound.", Price: price("79.99"), Stock: 40, ImageURL: ""},
	{Name: "Webcam HD", Description: "1080p HD webcam with auto-focus and built-in microphone for video calls.", Price: price("89.99"), Stock: 35, ImageURL: ""},
	{Name: "Monitor 27\"", Description: "27-inch 4K monitor with IPS display and adjustable stand.", Price: price("399.99"), Stock: 20, ImageURL: ""},
	{Name: "Desk Lamp", Description: "LED desk lamp with adjustable brightness and color temperature.", Price: price("44.99"), Stock: 55, ImageURL: ""},
}

// seedCatalog loads the demo products. Skipped when any products already
// exist so repeated runs don't duplicate the catalog.
func seedCatalog(svc service.ServiceInterface) error {
	existing, err := svc.ListProducts()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d products, skipping seed", len(existing))
		return nil
	}
	for _, in := range demoCatalog {
		p, err := svc.CreateProduct(in)
		if err != nil {
			return err
		}
		log.Printf("Product created: %s", p.Name)
	}
	return nil
}
