package catalog

import "storefront-service/models"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?w=400&auto=format&fit=crop"
}

var fallbackProducts = []models.Product{
	{ID: 1, Name: "Parfum Classique", Description: "Une fragrance intemporelle avec d'élégantes notes florales.", Price: 2500, FalconPrice: 18000, Image: unsplash("photo-1592945403244-b3fbafd7f539"), Category: "Parfums", IsNew: true},
	{ID: 2, Name: "Mélange Agrumes Frais", Description: "Senteur d'agrumes rafraîchissante parfaite pour le jour.", Price: 2000, FalconPrice: 15000, Image: unsplash("photo-1587017539504-67cfbddac569"), Category: "Parfums"},
	{ID: 3, Name: "Oud de Luxe", Description: "Fragrance d'oud premium avec des nuances boisées.", Price: 3500, FalconPrice: 25000, Image: unsplash("photo-1541643600914-78b084683601"), Category: "Parfums", IsNew: true, Discount: 10},
	{ID: 4, Name: "Jardin de Roses", Description: "Fragrance élégante de rose avec une douceur subtile.", Price: 2200, FalconPrice: 16000, Image: unsplash("photo-1594035910387-fea47794261f"), Category: "Parfums", IsNew: true},
	{ID: 5, Name: "Rêves de Vanille", Description: "Senteur chaude de vanille avec des notes crémeuses.", Price: 1800, FalconPrice: 13000, Image: unsplash("photo-1615634260167-c8cdede054de"), Category: "Parfums", Discount: 15},
	{ID: 6, Name: "Sérénité Lavande", Description: "Fragrance apaisante de lavande pour la relaxation.", Price: 1600, FalconPrice: 12000, Image: unsplash("photo-1592945403244-b3fbafd7f539"), Category: "Parfums", IsNew: true},
	{ID: 7, Name: "Oud Mystique Royal", Description: "Une fragrance luxueuse à base d'oud avec des notes boisées profondes et des touches épicées.", Price: 4500, FalconPrice: 32000, Image: unsplash("photo-1587017539504-67cfbddac569"), Category: "Parfums Premium", IsNew: true},
	{ID: 8, Name: "Rose de Grasse", Description: "Élégante essence de rose de Grasse avec des notes florales délicates.", Price: 3200, FalconPrice: 23000, Image: unsplash("photo-1541643600914-78b084683601"), Category: "Parfums Floraux", IsNew: true, Discount: 15},
	{ID: 9, Name: "Ambre Noir Intense", Description: "Mélange chaleureux d'ambre et de vanille avec une touche de patchouli.", Price: 3800, FalconPrice: 27000, Image: unsplash("photo-1594035910387-fea47794261f"), Category: "Parfums Orientaux", Discount: 10},
	{ID: 10, Name: "Jasmin de Nuit", Description: "Jasmin délicat avec des notes de tête d'agrumes et un fond musqué.", Price: 2800, FalconPrice: 20000, Image: unsplash("photo-1615634260167-c8cdede054de"), Category: "Parfums Floraux"},
	{ID: 11, Name: "Santal Crémeux", Description: "Santal crémeux avec des nuances de musc blanc. Apaisant et sophistiqué.", Price: 3500, FalconPrice: 25000, Image: unsplash("photo-1592945403244-b3fbafd7f539"), Category: "Parfums Boisés", IsNew: true},
	{ID: 12, Name: "Lavande Provence", Description: "Lavande pure de Provence avec des notes herbacées subtiles.", Price: 2200, FalconPrice: 16000, Image: unsplash("photo-1587017539504-67cfbddac569"), Category: "Parfums Frais", Discount: 20},
	{ID: 13, Name: "Musc Blanc Sensuel", Description: "Mélange sensuel de musc blanc avec des accents floraux doux.", Price: 3600, FalconPrice: 26000, Image: unsplash("photo-1541643600914-78b084683601"), Category: "Parfums Musqués", IsNew: true},
	{ID: 14, Name: "Vanille Gourmande", Description: "Vanille douce avec des notes de caramel et tonka.", Price: 2600, FalconPrice: 19000, Image: unsplash("photo-1594035910387-fea47794261f"), Category: "Parfums Gourmands", Discount: 5},
	{ID: 15, Name: "Agrumes Vitalité", Description: "Mélange d'agrumes brillants avec bergamote et pamplemousse.", Price: 2400, FalconPrice: 17000, Image: unsplash("photo-1615634260167-c8cdede054de"), Category: "Parfums Frais"},
	{ID: 16, Name: "Patchouli Mystique", Description: "Patchouli profond avec base boisée et touches terreuses.", Price: 3300, FalconPrice: 24000, Image: unsplash("photo-1592945403244-b3fbafd7f539"), Category: "Parfums Boisés", Discount: 12},
	{ID: 17, Name: "Pivoine Romance", Description: "Pivoine romantique avec des floraux doux et une touche de litchi.", Price: 2900, FalconPrice: 21000, Image: unsplash("photo-1587017539504-67cfbddac569"), Category: "Parfums Floraux", IsNew: true},
	{ID: 18, Name: "Vétiver Élégance", Description: "Vétiver sophistiqué avec des notes d'agrumes et une base boisée.", Price: 3100, FalconPrice: 22000, Image: unsplash("photo-1541643600914-78b084683601"), Category: "Parfums Premium", Discount: 8},
}

// Fallback returns a copy of the catalog bundled with the service. It is
// served whenever the products table is empty or unreachable.
func Fallback() []models.Product {
	out := make([]models.Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
