package student

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE (Dependency Inversion)
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет контракт хранилища студентов.
// Реализации находятся в слое infrastructure (jsonfile, sqlite, memory).
//
// Контракт для всех реализаций:
//
//   - Поиск по ID нечувствителен к регистру (ID нормализуется через NormalizeID)
//   - Add возвращает ErrStudentAlreadyExists при коллизии ID, не изменяя коллекцию
//   - Update и Delete возвращают ErrStudentNotFound, если записи нет
//   - GetAll возвращает записи в порядке добавления (стабильный порядок)
//   - Возвращаемые сущности - отсоединённые копии: их мутация не
//     затрагивает хранилище до явного Update
type Repository interface {
	// Add сохраняет нового студента. Ошибка при дубликате ID.
	Add(ctx context.Context, s *Student) error

	// GetByID возвращает студента по ID (без учёта регистра).
	GetByID(ctx context.Context, id string) (*Student, error)

	// Update заменяет существующую запись целиком.
	Update(ctx context.Context, s *Student) error

	// Delete удаляет запись по ID.
	Delete(ctx context.Context, id string) error

	// GetAll возвращает все записи в порядке добавления.
	GetAll(ctx context.Context) ([]*Student, error)

	// Count возвращает число записей.
	Count(ctx context.Context) (int, error)
}
