// internal/domain/product/catalog.go
package product

const (
	categoryReserve  = "gentleman's-reserve"
	categoryProducts = "products"

	imgChandelier = "https://images.pexels.com/photos/132340/pexels-photo-132340.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgPendant    = "https://images.pexels.com/photos/3288108/pexels-photo-3288108.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgTrack      = "https://images.pexels.com/photos/1451471/pexels-photo-1451471.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgDownlight  = "https://images.pexels.com/photos/3709388/pexels-photo-3709388.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgSconce     = "https://images.pexels.com/photos/1484516/pexels-photo-1484516.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgStrip      = "https://images.pexels.com/photos/3945673/pexels-photo-3945673.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgFloorLamp  = "https://images.pexels.com/photos/112811/pexels-photo-112811.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgFan        = "https://images.pexels.com/photos/1517355/pexels-photo-1517355.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgTableLamp  = "https://images.pexels.com/photos/751175/pexels-photo-751175.jpeg?auto=compress&cs=tinysrgb&w=360"
	imgBulb       = "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"
	imgSMD        = "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"
	imgMoon       = "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"
	imgIceMoon    = "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"
)

// defaultCatalog is the storefront's build-time product list
func defaultCatalog() []Product {
	return []Product{
		{ID: "1", Name: "Ecolight LED Chandelier", Price: 3000, OriginalPrice: 5000, OnSale: true, Image: imgChandelier, Images: []string{imgChandelier}, Slug: "ecolight-led-chandelier", Category: categoryReserve, Description: "Elegant LED chandelier for dining rooms and living spaces"},
		{ID: "2", Name: "Ecolight Pendant Light", Price: 2400, Image: imgPendant, Slug: "ecolight-pendant-light", Category: categoryReserve, Description: "Modern pendant light perfect for kitchen islands and tables"},
		{ID: "3", Name: "Ecolight Track Light Set", Price: 2000, OriginalPrice: 4500, OnSale: true, Image: imgTrack, Slug: "ecolight-track-light-set", Category: categoryReserve, Description: "Adjustable track lighting system for focused illumination"},
		{ID: "4", Name: "Ecolight Recessed Downlight", Price: 2199, Image: imgDownlight, Slug: "ecolight-recessed-downlight", Category: categoryReserve, Description: "Sleek recessed downlight for modern ceiling installation"},
		{ID: "13", Name: "Ecolight LED Panel 18W", Price: 3200, OriginalPrice: 4000, OnSale: true, Image: imgDownlight, Slug: "ecolight-led-panel-18w", Category: categoryReserve, Description: "Slim ceiling LED panel with bright, energy-efficient light."},
		{ID: "14", Name: "Ecolight Warm Ceiling Spot", Price: 2500, Image: imgTrack, Slug: "ecolight-warm-ceiling-spot", Category: categoryReserve, Description: "Recessed warm white spot light for living rooms and halls."},
		{ID: "15", Name: "Ecolight Decorative Lamp", Price: 2800, Image: imgTableLamp, Slug: "ecolight-decorative-lamp", Category: categoryReserve, Description: "Stylish table lamp to give your room a cozy modern look."},
		{ID: "5", Name: "Ecolight Wall Sconce", Price: 3000, Image: imgSconce, Slug: "ecolight-wall-sconce", Category: categoryProducts, Description: "Decorative wall sconce for ambient lighting"},
		{ID: "6", Name: "Ecolight LED Strip Light", Price: 7000, Image: imgStrip, Slug: "ecolight-led-strip-light", Category: categoryProducts, Description: "Flexible LED strip lighting for under cabinets and accent lighting"},
		{ID: "7", Name: "Ecolight Floor Lamp", Price: 3149, OriginalPrice: 5000, OnSale: true, Image: imgFloorLamp, Slug: "ecolight-floor-lamp", Category: categoryProducts, Description: "Modern floor lamp with adjustable height"},
		{ID: "8", Name: "Ecolight Ceiling Fan Light", Price: 1800, Image: imgFan, Slug: "ecolight-ceiling-fan-light", Category: categoryProducts, Description: "Energy-efficient ceiling fan with integrated LED light"},
		{ID: "9", Name: "Ecolight Table Lamp", Price: 1999, OriginalPrice: 5000, OnSale: true, Image: imgTableLamp, Slug: "ecolight-table-lamp", Category: categoryProducts, Description: "Stylish table lamp for bedrooms and study areas"},
		{ID: "10", Name: "Ecolight Outdoor Wall Light", Price: 2200, Image: imgChandelier, Slug: "ecolight-outdoor-wall-light", Category: categoryProducts, Description: "Weather-resistant outdoor wall light for patios and gardens"},
		{ID: "11", Name: "Ecolight LED Bulb Pack", Price: 2190, Image: imgDownlight, Slug: "ecolight-led-bulb-pack", Category: categoryProducts, Description: "Pack of 4 energy-efficient LED bulbs (9W each)"},
		{ID: "12", Name: "Ecolight Spot Light", Price: 3000, Image: imgTrack, Slug: "ecolight-spot-light", Category: categoryProducts, Description: "Adjustable spot light for highlighting artwork and features"},
		{ID: "16", Name: "12 W Bulb", Price: 130, Image: imgBulb, Slug: "12w-bulb", Category: categoryProducts, Description: "Energy-efficient 12W LED bulb with bright white light"},
		{ID: "17", Name: "18 W Bulb", Price: 250, Image: imgBulb, Slug: "18w-bulb", Category: categoryProducts, Description: "High-power 18W LED bulb for brighter illumination"},
		{ID: "18", Name: "7 W SMD Downlight Metallic", Price: 230, Image: imgSMD, Slug: "7w-smd-downlight-metallic", Category: categoryProducts, Description: "Sleek 7W SMD downlight with metallic finish for modern ceilings"},
		{ID: "19", Name: "12 W SMD Downlight Metallic", Price: 280, Image: imgSMD, Slug: "12w-smd-downlight-metallic", Category: categoryProducts, Description: "Powerful 12W SMD downlight with metallic finish"},
		{ID: "20", Name: "7 W PK Moon", Price: 250, Image: imgMoon, Slug: "7w-pk-moon", Category: categoryProducts, Description: "Elegant 7W PK Moon light with moon-like design"},
		{ID: "21", Name: "12 W PK Moon", Price: 280, Image: imgMoon, Slug: "12w-pk-moon", Category: categoryProducts, Description: "Bright 12W PK Moon light for enhanced illumination"},
		{ID: "22", Name: "12 W Ice Moon Adjustable", Price: 350, Image: imgIceMoon, Slug: "12w-ice-moon-adjustable", Category: categoryProducts, Description: "Adjustable 12W Ice Moon light with flexible positioning"},
		{ID: "23", Name: "18 W Ice Moon Adjustable", Price: 450, Image: imgIceMoon, Slug: "18w-ice-moon-adjustable", Category: categoryProducts, Description: "High-power 18W Ice Moon adjustable light"},
		{ID: "24", Name: "24 W Ice Moon Adjustable", Price: 650, Image: imgIceMoon, Slug: "24w-ice-moon-adjustable", Category: categoryProducts, Description: "Premium 24W Ice Moon adjustable light for maximum brightness"},
		{ID: "25", Name: "5 W COB", Price: 230, Image: imgBulb, Slug: "5w-cob", Category: categoryProducts, Description: "Compact 5W COB LED light with uniform illumination"},
	}
}
