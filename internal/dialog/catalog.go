package dialog

// Catalog resolves message keys to user-facing text. Overrides loaded from
// configuration shadow the built-in Spanish defaults, so deployments can
// reword the bot without a rebuild.
type Catalog map[string]string

// Text returns the override for key, or the built-in default.
func (c Catalog) Text(key string) string {
	if c != nil {
		if v, ok := c[key]; ok {
			return v
		}
	}
	return defaultTexts[key]
}

var defaultTexts = map[string]string{
	"saludo": "Hola, %s, soy RespiraBot 💨 y estoy aquí para ayudarte a ser más eficiente con los envíos y el material que estamos recogiendo para combatir el 🦠\nDime en qué provincia estás, por favor.",

	"pregunta_rama": "¿En qué te puedo ayudar?",

	"confirma_entrega":         "¿Puedes confirmar la entrega de productos? 🚚",
	"pide_cantidad_entregada":  "👌 Estupendo, ¿me puedes decir cuántos has entregado del modelo de Osakidetza?",
	"error_cantidad_entregada": "👎 Por favor, introduce el número de unidades entregadas del modelo de Osakidetza.",
	"pide_cantidad_anterior":   "👍 Genial, ¿y cuántos has entregado del modelo anterior?",
	"error_cantidad_anterior":  "👎 Por favor, introduce el número de unidades entregadas del modelo anterior.",

	"pregunta_pla":     "Muy bien. ¿Necesitas más PLA 🎁?",
	"pregunta_diametro": "¿De qué diámetro lo necesitas?",
	"diametro_fino":    "1.75mm 🧵, entendido.",
	"diametro_grueso":  "3mm 🧶, entendido.",

	"pregunta_bobinas":       "Vale.\n¿Has entregado ya bobinas vacías para su reutilización?",
	"pide_cantidad_bobinas":  "¿Cuántas?",
	"error_cantidad_bobinas": "👎 Por favor, introduce el número de bobinas entregadas para su reutilización.",

	"no_entregado": "☹️ Lo sentimos, puede que nuestros compañeros de recogida hayan tenido algún problema 🚑.\nTe pedimos que esperes un poco antes de marcar la recogida como fallida. Si ya llevas un rato esperando o son más de las 20:00, márcala como fallida para que lo tengamos en cuenta.\n¿Prefieres esperar un rato?",
	"incidencia":   "🤷 Ahora mismo no sé qué ha podido pasar. Déjame que pase esta información y el equipo tratará de solucionarlo lo antes posible. Sentimos las molestias.",
	"esperar":      "Vale, ¡gracias por tu paciencia!",

	"pide_cantidad_preparada":           "👌 Estupendo, ¿me puedes decir cuántas viseras tienes listas del modelo de Osakidetza?",
	"error_cantidad_preparada":          "👎 Por favor, introduce el número de unidades listas del modelo de Osakidetza.",
	"pide_cantidad_anterior_preparada":  "👍 Genial, ¿y cuántas tienes listas del modelo anterior?",
	"error_cantidad_anterior_preparada": "👎 Por favor, introduce el número de unidades listas del modelo anterior.",

	"pide_municipio":      "Ok, voy a necesitar algo de información para programar esta recogida.\nDime cuál es tu municipio.",
	"pide_direccion":      "Muy bien, ahora la dirección para esta recogida.",
	"pregunta_horario":    "¿En qué horario podemos pasar?",
	"pide_telefono":       "Muy bien, por último, dime tu teléfono.",
	"error_telefono":      "Yo creo que ahí me faltan números. Dímelo de nuevo sólo con números (ej. 679123456) o comparte tu contacto, por favor.",
	"recogida_programada": "👌 Genial, en la próxima recogida pasarán por tu dirección en el horario indicado. Gracias.",
	"prep_recogida":       "Recuerda dejar el material en la puerta para evitar contactos innecesarios. 📦",

	"fin":            "🎉 Esto es todo por ahora. Muchas gracias, %s.\nSi quieres empezar de nuevo, dale al botón o escribe /empezar",
	"cancelado":      "Bueno, pues nada... luego hablamos :(",
	"caducado":       "Oye, mejor hablamos luego, que ahora te veo liado. 👋\nSi quieres empezar de nuevo, dale al botón o escribe /empezar",
	"error_generico": "Perdona, algo ha ido mal mientras hablábamos 😅.\nSi quieres que lo intentemos de nuevo, dale al botón o escribe /empezar",
	"sin_conversacion": "Ahora mismo no estamos hablando de nada. Dale al botón o escribe /empezar cuando quieras.",

	"no_entendi_1_1": "Perdona, ",
	"no_entendi_1_2": "Disculpa, ",
	"no_entendi_1_3": "Uy, ",
	"no_entendi_2_1": ", no te he entendido. ¿Puedes usar los botones de abajo?",
	"no_entendi_2_2": ", eso no lo he pillado. Prueba con los botones, por favor.",
	"no_entendi_2_3": ", no sé qué has querido decir. Elige una de las opciones.",
}
