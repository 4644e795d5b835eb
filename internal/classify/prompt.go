package classify

import "fmt"

// buildPrompt renders the Spanish classification instruction for a user
// message. The current date is injected so the model can fill timestamps
// without reading the clock itself.
func buildPrompt(text, currentDate string) string {
	return fmt.Sprintf(`
Analiza el siguiente mensaje y determina su categoría. Responde en español con la siguiente estructura JSON:

Para mensajes generales (preguntas no financieras, saludos, etc.):
{
    "category": "general",
    "response": "respuesta relevante al mensaje en español"
}

Para mensajes de transacciones financieras (gastos, ingresos, compras, pagos):
{
    "category": "financial",
    "data": {
        "amount": número,
        "category": "string (ej. Comida, Salario, Facturas)",
        "type": "ingresos" o "gastos",
        "timestamp": "%[1]s"
    }
}

Para solicitudes de estadísticas financieras (preguntar sobre balance, reportes, resúmenes):
{
    "category": "statistics",
    "response": "statistics_request"
}

Mensaje: "%[2]s"

Directrices:
- Usa solo "ingresos" o "gastos" para el tipo
- Siempre usa "%[1]s" para timestamp a menos que se mencione una fecha específica en el mensaje
- Para mensajes financieros, extrae el monto como número
- Categoriza apropiadamente (ej. "comida" -> "Comida", "salario" -> "Salario")
- Si se menciona una fecha específica en el mensaje, usa esa fecha en lugar de "%[1]s"
- Responde completamente en español
`, currentDate, text)
}
