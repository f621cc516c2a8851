// Package views holds the server-rendered HTML templates. The template set
// is handed to gin via router.SetHTMLTemplate, so handlers render with
// c.HTML and never touch template internals.
package views

import (
	"html/template"
)

// Templates builds the full template set.
func Templates() *template.Template {
	t := template.New("")
	template.Must(t.New("form.html").Parse(formHTML))
	template.Must(t.New("confirm.html").Parse(confirmHTML))
	template.Must(t.New("login.html").Parse(loginHTML))
	template.Must(t.New("list.html").Parse(listHTML))
	template.Must(t.New("vet.html").Parse(vetHTML))
	return t
}

const pageStyle = `
<style>
    body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
    .container { max-width: 700px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
    h1 { color: #333; }
    label { display: block; margin-top: 12px; font-weight: bold; color: #374151; }
    input, select { width: 100%; padding: 8px; margin-top: 4px; border: 1px solid #ccc; border-radius: 4px; box-sizing: border-box; }
    button { margin-top: 20px; padding: 10px 24px; background: #007bff; color: white; border: none; border-radius: 4px; cursor: pointer; }
    .error { background: #fef2f2; color: #dc2626; padding: 12px; border-radius: 4px; margin: 12px 0; }
    .notice { background: #f0fdf4; color: #16a34a; padding: 12px; border-radius: 4px; margin: 12px 0; }
    table { width: 100%; border-collapse: collapse; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 0.9rem; }
    th { background: #f8f9fa; }
    .topbar { display: flex; justify-content: space-between; align-items: center; }
    .topbar a { margin-left: 12px; }
</style>`

const formHTML = `<!DOCTYPE html>
<html>
<head><title>Recogida de muestras</title>` + pageStyle + `</head>
<body>
<div class="container">
    <h1>Solicitar recogida de muestra</h1>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
    <form method="POST" action="/solicitud">
        <label>Zona</label>
        <input type="text" name="zona">
        <label>Nombre del dueño *</label>
        <input type="text" name="dueno_nombre">
        <label>Teléfono *</label>
        <input type="text" name="dueno_telefono">
        <label>Email</label>
        <input type="text" name="dueno_email">
        <label>Nombre de la mascota *</label>
        <input type="text" name="mascota_nombre">
        <label>Tipo de mascota</label>
        <input type="text" name="mascota_tipo">
        <label>Edad</label>
        <input type="text" name="mascota_edad">
        <label>Raza</label>
        <input type="text" name="mascota_raza">
        <label>Tipo de muestra *</label>
        <select name="muestra_tipo">
            <option value="sangre">Sangre</option>
            <option value="heces">Heces</option>
            <option value="orina">Orina</option>
            <option value="otro">Otro</option>
        </select>
        <label>Detalle de la muestra (si es otro)</label>
        <input type="text" name="muestra_detalle">
        <label>Dirección de recogida *</label>
        <input type="text" name="direccion">
        <label>Fecha preferida</label>
        <input type="date" name="fecha">
        <label>Horario preferido</label>
        <input type="text" name="horario">
        <button type="submit">Enviar solicitud</button>
    </form>
</div>
</body>
</html>`

const confirmHTML = `<!DOCTYPE html>
<html>
<head><title>Solicitud recibida</title>` + pageStyle + `</head>
<body>
<div class="container">
    <h1>¡Solicitud recibida!</h1>
    <div class="notice">Tu solicitud #{{.ID}} quedó registrada. Te contactaremos para coordinar la recogida.</div>
    <a href="/">Volver al formulario</a>
</div>
</body>
</html>`

const loginHTML = `<!DOCTYPE html>
<html>
<head><title>Ingreso</title>` + pageStyle + `</head>
<body>
<div class="container">
    <h1>Ingreso de personal</h1>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
    <form method="POST" action="/login">
        <label>Usuario</label>
        <input type="text" name="usuario">
        <label>Clave</label>
        <input type="password" name="clave">
        <button type="submit">Ingresar</button>
    </form>
</div>
</body>
</html>`

const listHTML = `<!DOCTYPE html>
<html>
<head><title>Solicitudes</title>` + pageStyle + `</head>
<body>
<div class="container">
    <div class="topbar">
        <h1>Solicitudes recientes</h1>
        <div>
            {{if .IsAdmin}}<a href="/crear-vet">Crear veterinario</a>{{end}}
            <a href="/logout">Salir</a>
        </div>
    </div>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
    {{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
    <form method="POST" action="/solicitudes/borrar">
        <table>
            <tr>
                <th></th><th>#</th><th>Dueño</th><th>Teléfono</th><th>Mascota</th>
                <th>Muestra</th><th>Dirección</th><th>Fecha</th><th>Estado</th><th>Creado</th>
            </tr>
            {{range .Requests}}
            <tr>
                <td><input type="checkbox" name="ids" value="{{.ID}}" style="width:auto"></td>
                <td>{{.ID}}</td>
                <td>{{.OwnerName}}</td>
                <td>{{.OwnerPhone}}</td>
                <td>{{.PetName}}</td>
                <td>{{.SampleType}}{{if .SampleDetail}} ({{.SampleDetail}}){{end}}</td>
                <td>{{.Address}}</td>
                <td>{{if .PickupDate}}{{.PickupDate}}{{end}}</td>
                <td>{{.Status}}</td>
                <td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
            </tr>
            {{else}}
            <tr><td colspan="10">No hay solicitudes todavía.</td></tr>
            {{end}}
        </table>
        <button type="submit">Borrar seleccionadas</button>
    </form>
</div>
</body>
</html>`

const vetHTML = `<!DOCTYPE html>
<html>
<head><title>Crear veterinario</title>` + pageStyle + `</head>
<body>
<div class="container">
    <h1>Crear cuenta de veterinario</h1>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
    <form method="POST" action="/crear-vet">
        <label>Usuario</label>
        <input type="text" name="usuario">
        <label>Nombre</label>
        <input type="text" name="nombre">
        <label>Clave</label>
        <input type="password" name="clave">
        <button type="submit">Crear</button>
    </form>
    <p><a href="/solicitudes">Volver a solicitudes</a></p>
</div>
</body>
</html>`
