// Package student содержит доменную модель студенческой записи.
//
// Это ядро бизнес-логики реестра студентов. Пакет определяет:
//
//   - Сущность (Entity): Student - запись студента с валидацией всех полей
//   - Record: плоское представление для сериализации (JSON/CSV)
//   - Criteria: закрытая таблица предикатов для поиска
//   - Transcript: проекция академической выписки
//   - Интерфейс репозитория: Repository
//
// # Архитектурные принципы
//
// Пакет следует принципам Clean Architecture и DDD:
//
//  1. Нулевые внешние зависимости - только стандартная библиотека Go
//  2. Dependency Inversion - определяет интерфейсы, которые реализуются в infrastructure
//  3. Rich Domain Model - бизнес-логика инкапсулирована в сущностях
//
// # Основные инварианты
//
//   - ID неизменяем после создания и уникален в коллекции
//   - Каждый ключ в Grades присутствует в Courses
//   - GPA равен среднему арифметическому оценок (0.0 без оценок)
//   - Конструирование атомарно: невалидное поле - нет сущности
//
// # Пример использования
//
//	s, err := student.New(student.Params{
//	    ID:          "stu001",
//	    FirstName:   "alice",
//	    LastName:    "johnson",
//	    Email:       "Alice@University.edu",
//	    Phone:       "(555) 123-4567",
//	    DateOfBirth: "2001-03-15",
//	    Major:       "Computer Science",
//	})
//	if err != nil {
//	    return err
//	}
//
//	added, _ := s.AddCourse("Algorithms")
//	err = s.RecordGrade("Algorithms", 3.8) // GPA пересчитывается автоматически
package student
