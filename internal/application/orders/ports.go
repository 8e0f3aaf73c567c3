package orders

// FileStorage borra archivos adjuntos de una orden (documento, comprobante).
// El borrado es best-effort: ocurre después del commit y sus fallos solo se
// registran en el log, nunca revierten la transacción ya confirmada.
type FileStorage interface {
	Remove(path string) error
}
