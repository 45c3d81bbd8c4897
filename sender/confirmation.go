package sender

import (
	"bytes"
	"fmt"
	"html/template"

	"storefront-service/models"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html><body>
<h2>Merci pour votre commande, {{.Order.CustomerName}} !</h2>
<p>Référence : <strong>{{.Order.OrderID}}</strong></p>
<table>
<tr><th>Produit</th><th>Quantité</th><th>Prix</th></tr>
{{- range .Order.Items}}
<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 0}} DA</td></tr>
{{- end}}
</table>
<p>Livraison ({{.Delivery}}) : {{.Order.ShippingCost.StringFixed 0}} DA</p>
<p><strong>Total : {{.Order.TotalAmount.StringFixed 0}} DA</strong></p>
<p>{{.Order.Wilaya}}, {{.Order.Commune}}. Paiement à la livraison.</p>
</body></html>`))

var deliveryLabels = map[models.DeliveryMethod]string{
	models.DeliveryHome:   "à domicile",
	models.DeliveryOffice: "au bureau",
}

// OrderConfirmation renders the subject and HTML body sent after checkout.
func OrderConfirmation(order *models.Order) (string, string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Order    *models.Order
		Delivery string
	}{Order: order, Delivery: deliveryLabels[order.DeliveryMethod]})
	if err != nil {
		return "", "", fmt.Errorf("render confirmation for %s: %w", order.OrderID, err)
	}
	return fmt.Sprintf("Confirmation de commande %s", order.OrderID), buf.String(), nil
}
